// Package visitor maps browser sessions to their store sets. Each visitor id
// (an opaque cookie) owns one independent set of state containers, evicted
// after a period of inactivity.
package visitor

import (
	"context"
	"sync"
	"time"

	"boighor-storefront/internal/store"
	"boighor-storefront/pkg/cache"
)

// Stores is the full state-container set for one visitor.
type Stores struct {
	VisitorID string

	Session  *store.SessionStore
	Catalog  *store.CatalogStore
	Cart     *store.CartStore
	Wishlist *store.WishlistStore
	Reviews  *store.ReviewStore
}

// Factory builds a fresh store set for a visitor id. Stores hydrate
// themselves from durable storage inside their constructors.
type Factory func(visitorID string) *Stores

type Registry struct {
	mu      sync.Mutex
	cache   cache.CacheService
	ttl     time.Duration
	factory Factory
}

func NewRegistry(c cache.CacheService, ttl time.Duration, factory Factory) *Registry {
	return &Registry{cache: c, ttl: ttl, factory: factory}
}

// Get returns the visitor's store set, creating it on first sight. Every
// access refreshes the TTL so active visitors are never evicted.
func (r *Registry) Get(visitorID string) *Stores {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache.Get(visitorID); ok {
		if stores, ok := cached.(*Stores); ok {
			r.cache.Set(visitorID, stores, r.ttl)
			return stores
		}
	}

	stores := r.factory(visitorID)
	r.cache.Set(visitorID, stores, r.ttl)
	return stores
}

type ctxKey struct{}

// WithContext attaches a visitor's store set to the request context.
func WithContext(ctx context.Context, s *Stores) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the store set attached by the visitor middleware.
func FromContext(ctx context.Context) (*Stores, bool) {
	s, ok := ctx.Value(ctxKey{}).(*Stores)
	return s, ok
}
