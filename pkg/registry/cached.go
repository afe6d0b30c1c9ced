package registry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
)

// Registration is one stored backend registration.
type Registration struct {
	ResourceType string
	Properties   dms.ServiceProperties
}

// Store lists backend registrations from a backing table.
type Store interface {
	List(ctx context.Context) ([]Registration, error)
}

// Cached resolves against a TTL snapshot of a registration store. The
// snapshot is rebuilt on first use after expiry; a refresh failure is an
// infrastructure error surfaced to the caller.
type Cached struct {
	store Store
	ttl   time.Duration

	mu       sync.Mutex
	snapshot *Static
	expires  time.Time
}

// NewCached creates a store-backed resolver with the given snapshot TTL.
func NewCached(store Store, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Cached{store: store, ttl: ttl}
}

// Resolve looks up the descriptor in the current snapshot, refreshing it
// first when expired.
func (c *Cached) Resolve(ctx context.Context, resourceTypeID string) (dms.ServiceProperties, bool, error) {
	snapshot, err := c.current(ctx)
	if err != nil {
		return dms.ServiceProperties{}, false, err
	}
	return snapshot.Resolve(ctx, resourceTypeID)
}

func (c *Cached) current(ctx context.Context) (*Static, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Now().Before(c.expires) {
		return c.snapshot, nil
	}

	registrations, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("refreshing dms registrations: %w", err)
	}

	snapshot := NewStatic()
	for _, reg := range registrations {
		if err := snapshot.Register(reg.ResourceType, reg.Properties); err != nil {
			return nil, fmt.Errorf("loading dms registration %s: %w", reg.ResourceType, err)
		}
	}

	c.snapshot = snapshot
	c.expires = time.Now().Add(c.ttl)
	return snapshot, nil
}

// Invalidate drops the snapshot so the next lookup re-reads the store.
func (c *Cached) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

// Verify interface compliance.
var _ Resolver = (*Cached)(nil)
