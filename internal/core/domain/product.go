package domain

import "time"

// MainCollection is the collection served by the routes without an explicit
// collection name.
const MainCollection = "products"

type (
	Product struct {
		ID                string
		Name              string
		Price             float64
		ImageURL          string
		DisplayImages     []string
		Category          []string
		Sizes             []string
		Description       string
		ShippingAndReturn string
		CareGuide         string
		Gender            string
	}

	// ProductFields holds the business fields of a product as supplied by a
	// caller. A nil Price or a nil slice means the field was absent.
	ProductFields struct {
		Name              string   `field:"name" validate:"required"`
		Price             *float64 `field:"price" validate:"required"`
		ImageURL          string   `field:"imageUrl" validate:"required"`
		DisplayImages     []string `field:"displayImages" validate:"required,dive,required"`
		Category          []string `field:"category" validate:"required,dive,required"`
		Sizes             []string `field:"sizes" validate:"required,dive,required"`
		Description       string   `field:"description" validate:"required"`
		ShippingAndReturn string   `field:"shippingAndReturn" validate:"required"`
		CareGuide         string   `field:"careGuide" validate:"required"`
		Gender            string   `field:"gender" validate:"required"`
	}
)

// Product returns the product described by f without an identity.
//
// Call it only after Validate succeeded.
func (f ProductFields) Product() Product {
	var price float64
	if f.Price != nil {
		price = *f.Price
	}
	return Product{
		Name:              f.Name,
		Price:             price,
		ImageURL:          f.ImageURL,
		DisplayImages:     f.DisplayImages,
		Category:          f.Category,
		Sizes:             f.Sizes,
		Description:       f.Description,
		ShippingAndReturn: f.ShippingAndReturn,
		CareGuide:         f.CareGuide,
		Gender:            f.Gender,
	}
}

type ProductCreated struct {
	Collection string
	Product    Product
	CreatedAt  time.Time
}
