package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/shopspring/decimal"
)

var _ port.ProductCreator = (*Service)(nil)
var _ port.ProductsLister = (*Service)(nil)
var _ port.ProductReader = (*Service)(nil)
var _ port.OrderCreator = (*Service)(nil)

const DefaultEventTimeout = 2 * time.Second

type Service struct {
	catalog      port.CatalogResolver
	payments     port.PaymentGateway
	events       port.ProductEventsProducer
	eventTimeout time.Duration
	now          func() time.Time
}

type Opt func(*Service)

// EventTimeoutOpt bounds the publish of one product event.
func EventTimeoutOpt(d time.Duration) Opt {
	return func(s *Service) {
		if d > 0 {
			s.eventTimeout = d
		}
	}
}

// New returns the catalog service. The events producer is optional, pass nil
// to disable product events.
func New(
	catalog port.CatalogResolver,
	payments port.PaymentGateway,
	events port.ProductEventsProducer,
	opts ...Opt,
) Service {
	s := Service{
		catalog:      catalog,
		payments:     payments,
		events:       events,
		eventTimeout: DefaultEventTimeout,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// CreateProduct validates fields and stores the product in the named
// collection. Nothing is stored when validation fails.
func (s Service) CreateProduct(
	ctx context.Context, collection string, fields domain.ProductFields,
) (domain.Product, error) {
	const op = "Service.CreateProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := fields.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.Resolve(collection).Create(ctx, fields.Product())
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	s.produceCreated(ctx, collection, p)
	return p, nil
}

func (s Service) produceCreated(
	ctx context.Context, collection string, p domain.Product,
) {
	const op = "Service.produceCreated"

	if s.events == nil {
		return
	}

	evt := domain.ProductCreated{
		Collection: collection,
		Product:    p,
		CreatedAt:  s.now(),
	}

	// Detached from the request, the product is stored already.
	evtCtx, cancel := context.WithTimeout(
		context.WithoutCancel(ctx), s.eventTimeout,
	)
	defer cancel()

	if err := s.events.ProduceProductCreated(evtCtx, evt); err != nil {
		slog.Warn("failed to produce product event",
			"op", op, "productID", p.ID, "err", err)
	}
}

func (s Service) ListProducts(
	ctx context.Context, collection string,
) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.catalog.Resolve(collection).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

// GetProduct looks the product up in the main collection.
func (s Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	const op = "Service.GetProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, err := s.catalog.Resolve(domain.MainCollection).GetByID(ctx, id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// CreateOrder creates a gateway order for amount given in major units.
func (s Service) CreateOrder(ctx context.Context, amount float64) (domain.Order, error) {
	const op = "Service.CreateOrder"

	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	minor, err := toMinorUnits(amount)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}

	req := domain.OrderRequest{
		AmountMinor: minor,
		Currency:    domain.DefaultCurrency,
		Receipt:     s.receipt(),
	}

	order, err := s.payments.CreateOrder(ctx, req)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%s: %w", op, err)
	}
	return order, nil
}

func (s Service) receipt() string {
	return domain.ReceiptPrefix + strconv.FormatInt(s.now().UnixMilli(), 10)
}

var maxMinorUnits = decimal.NewFromInt(math.MaxInt64)

// toMinorUnits rounds amount to the smallest currency unit. The rounded value
// must be positive and fit int64.
func toMinorUnits(amount float64) (int64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, &domain.ValidationError{
			Field: "amount", Message: "amount must be a finite number",
		}
	}

	minor := decimal.NewFromFloat(amount).Shift(2).Round(0)
	switch {
	case !minor.IsPositive():
		return 0, &domain.ValidationError{
			Field: "amount", Message: "amount must be greater than zero",
		}
	case minor.GreaterThan(maxMinorUnits):
		return 0, &domain.ValidationError{
			Field: "amount", Message: "amount is too large",
		}
	}
	return minor.IntPart(), nil
}
