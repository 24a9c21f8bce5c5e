package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ port.CatalogStore = (*Store)(nil)

type productDocument struct {
	ID                primitive.ObjectID `bson:"_id"`
	Name              string             `bson:"name"`
	Price             float64            `bson:"price"`
	ImageURL          string             `bson:"imageUrl"`
	DisplayImages     []string           `bson:"displayImages"`
	Category          []string           `bson:"category"`
	Sizes             []string           `bson:"sizes"`
	Description       string             `bson:"description"`
	ShippingAndReturn string             `bson:"shippingAndReturn"`
	CareGuide         string             `bson:"careGuide"`
	Gender            string             `bson:"gender"`
}

// A Store persists products of a single collection.
type Store struct {
	coll *mongo.Collection
}

func NewStore(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

func (s *Store) Collection() string {
	return s.coll.Name()
}

// Create inserts p with a new identity and returns the stored product.
func (s *Store) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	const op = "Store.Create"

	doc := toDocument(p)
	doc.ID = primitive.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, &domain.StorageError{Err: err})
	}
	return doc.toDomain(), nil
}

// ListAll returns every product of the collection in storage order.
func (s *Store) ListAll(ctx context.Context) ([]domain.Product, error) {
	const op = "Store.ListAll"

	cur, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, &domain.StorageError{Err: err})
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s: %w", op, &domain.StorageError{Err: err})
	}

	ps := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		ps = append(ps, doc.toDomain())
	}
	return ps, nil
}

func (s *Store) GetByID(ctx context.Context, id string) (domain.Product, error) {
	const op = "Store.GetByID"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidIdentity)
	}

	var doc productDocument
	err = s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Product{}, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return domain.Product{}, fmt.Errorf("%s: %w", op, &domain.StorageError{Err: err})
	}
	return doc.toDomain(), nil
}

func toDocument(p domain.Product) productDocument {
	return productDocument{
		Name:              p.Name,
		Price:             p.Price,
		ImageURL:          p.ImageURL,
		DisplayImages:     p.DisplayImages,
		Category:          p.Category,
		Sizes:             p.Sizes,
		Description:       p.Description,
		ShippingAndReturn: p.ShippingAndReturn,
		CareGuide:         p.CareGuide,
		Gender:            p.Gender,
	}
}

func (d productDocument) toDomain() domain.Product {
	return domain.Product{
		ID:                d.ID.Hex(),
		Name:              d.Name,
		Price:             d.Price,
		ImageURL:          d.ImageURL,
		DisplayImages:     d.DisplayImages,
		Category:          d.Category,
		Sizes:             d.Sizes,
		Description:       d.Description,
		ShippingAndReturn: d.ShippingAndReturn,
		CareGuide:         d.CareGuide,
		Gender:            d.Gender,
	}
}
