package port

import (
	"context"

	"github.com/niksmo/catalog/internal/core/domain"
)

type ProductCreator interface {
	CreateProduct(
		ctx context.Context, collection string, fields domain.ProductFields,
	) (domain.Product, error)
}

type ProductsLister interface {
	ListProducts(ctx context.Context, collection string) ([]domain.Product, error)
}

type ProductReader interface {
	GetProduct(ctx context.Context, id string) (domain.Product, error)
}

type OrderCreator interface {
	CreateOrder(ctx context.Context, amount float64) (domain.Order, error)
}

// A CatalogStore persists products of one named collection.
type CatalogStore interface {
	Create(context.Context, domain.Product) (domain.Product, error)
	ListAll(context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (domain.Product, error)
}

// A CatalogResolver returns the store bound to the collection name.
type CatalogResolver interface {
	Resolve(name string) CatalogStore
}

type PaymentGateway interface {
	CreateOrder(context.Context, domain.OrderRequest) (domain.Order, error)
}

type ProductEventsProducer interface {
	ProduceProductCreated(context.Context, domain.ProductCreated) error
}
