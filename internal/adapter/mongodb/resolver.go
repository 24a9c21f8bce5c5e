package mongodb

import (
	"slices"
	"sync"

	"github.com/niksmo/catalog/internal/core/port"
	"go.mongodb.org/mongo-driver/mongo"
)

var _ port.CatalogResolver = (*Resolver)(nil)

// A Resolver binds collection names to stores of one database.
//
// It is created once at startup and lives for the whole process. Stores are
// never evicted. Names are not checked, so the name "products" targets the
// main catalog.
type Resolver struct {
	db     *mongo.Database
	stores sync.Map // string -> *Store
}

func NewResolver(db *mongo.Database) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) Resolve(name string) port.CatalogStore {
	return r.Store(name)
}

// Store returns the store bound to name, binding a new one on first use.
// When two callers race on a new name the first stored value wins and both
// get it.
func (r *Resolver) Store(name string) *Store {
	if s, ok := r.stores.Load(name); ok {
		return s.(*Store)
	}
	s, _ := r.stores.LoadOrStore(name, NewStore(r.db.Collection(name)))
	return s.(*Store)
}

// Names returns the bound collection names in lexical order.
func (r *Resolver) Names() []string {
	var names []string
	r.stores.Range(func(k, _ any) bool {
		names = append(names, k.(string))
		return true
	})
	slices.Sort(names)
	return names
}
