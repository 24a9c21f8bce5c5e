package httphandler

import "github.com/niksmo/catalog/internal/core/domain"

type (
	ProductRequest struct {
		Name              string   `json:"name"`
		Price             *float64 `json:"price"`
		ImageURL          string   `json:"imageUrl"`
		DisplayImages     []string `json:"displayImages"`
		Category          []string `json:"category"`
		Sizes             []string `json:"sizes"`
		Description       string   `json:"description"`
		ShippingAndReturn string   `json:"shippingAndReturn"`
		CareGuide         string   `json:"careGuide"`
		Gender            string   `json:"gender"`
	}

	Product struct {
		ID                string   `json:"_id"`
		Name              string   `json:"name"`
		Price             float64  `json:"price"`
		ImageURL          string   `json:"imageUrl"`
		DisplayImages     []string `json:"displayImages"`
		Category          []string `json:"category"`
		Sizes             []string `json:"sizes"`
		Description       string   `json:"description"`
		ShippingAndReturn string   `json:"shippingAndReturn"`
		CareGuide         string   `json:"careGuide"`
		Gender            string   `json:"gender"`
	}

	MainProductCreated struct {
		Message     string  `json:"message"`
		MainProduct Product `json:"mainProduct"`
	}

	SubProductCreated struct {
		Message    string  `json:"message"`
		SubProduct Product `json:"subProduct"`
	}
)

type (
	OrderRequest struct {
		Amount *float64 `json:"amount"`
	}

	Order struct {
		ID         string            `json:"id"`
		Entity     string            `json:"entity"`
		Amount     int64             `json:"amount"`
		AmountPaid int64             `json:"amount_paid"`
		AmountDue  int64             `json:"amount_due"`
		Currency   string            `json:"currency"`
		Receipt    string            `json:"receipt"`
		OfferID    *string           `json:"offer_id"`
		Status     string            `json:"status"`
		Attempts   int               `json:"attempts"`
		Notes      map[string]string `json:"notes"`
		CreatedAt  int64             `json:"created_at"`
	}
)

type ErrorMessage struct {
	Message string `json:"message"`
}

func (r ProductRequest) toDomain() domain.ProductFields {
	return domain.ProductFields{
		Name:              r.Name,
		Price:             r.Price,
		ImageURL:          r.ImageURL,
		DisplayImages:     r.DisplayImages,
		Category:          r.Category,
		Sizes:             r.Sizes,
		Description:       r.Description,
		ShippingAndReturn: r.ShippingAndReturn,
		CareGuide:         r.CareGuide,
		Gender:            r.Gender,
	}
}

func productFromDomain(p domain.Product) Product {
	return Product{
		ID:                p.ID,
		Name:              p.Name,
		Price:             p.Price,
		ImageURL:          p.ImageURL,
		DisplayImages:     nonNil(p.DisplayImages),
		Category:          nonNil(p.Category),
		Sizes:             nonNil(p.Sizes),
		Description:       p.Description,
		ShippingAndReturn: p.ShippingAndReturn,
		CareGuide:         p.CareGuide,
		Gender:            p.Gender,
	}
}

func productsFromDomain(ps []domain.Product) []Product {
	out := make([]Product, 0, len(ps))
	for _, p := range ps {
		out = append(out, productFromDomain(p))
	}
	return out
}

func orderFromDomain(o domain.Order) Order {
	notes := o.Notes
	if notes == nil {
		notes = map[string]string{}
	}
	return Order{
		ID:         o.ID,
		Entity:     o.Entity,
		Amount:     o.Amount,
		AmountPaid: o.AmountPaid,
		AmountDue:  o.AmountDue,
		Currency:   o.Currency,
		Receipt:    o.Receipt,
		OfferID:    o.OfferID,
		Status:     o.Status,
		Attempts:   o.Attempts,
		Notes:      notes,
		CreatedAt:  o.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
