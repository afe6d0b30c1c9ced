// Package registry maps resource type identifiers to registered DMS
// backend descriptors.
package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ryansupak-avanade-001/osdu-dataset/pkg/dms"
)

// Resolver resolves a resource type identifier to a backend descriptor.
// A failed lookup is reported through found=false, never through err:
// err is reserved for infrastructure failures (e.g. the backing store is
// unreachable), which are fatal to the request.
type Resolver interface {
	Resolve(ctx context.Context, resourceTypeID string) (props dms.ServiceProperties, found bool, err error)
}

// Static is an in-memory registry built once at startup. Lookup policy
// is deterministic: an exact pattern match wins, otherwise the wildcard
// pattern with the longest matching prefix wins.
type Static struct {
	mu       sync.RWMutex
	patterns map[string]dms.ServiceProperties
}

// NewStatic creates an empty registry.
func NewStatic() *Static {
	return &Static{patterns: make(map[string]dms.ServiceProperties)}
}

// Register adds a backend descriptor under a resource type pattern.
// Patterns ending in "*" match any identifier carrying the prefix before
// the "*"; all other patterns match exactly.
func (s *Static) Register(pattern string, props dms.ServiceProperties) error {
	if pattern == "" {
		return fmt.Errorf("resource type pattern is required")
	}
	if props.BaseURL == "" {
		return fmt.Errorf("backend for %q has no base URL", pattern)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.patterns[pattern]; exists {
		return fmt.Errorf("resource type %s already registered", pattern)
	}
	s.patterns[pattern] = props
	return nil
}

// Resolve looks up the backend descriptor for a resource type id.
func (s *Static) Resolve(_ context.Context, resourceTypeID string) (dms.ServiceProperties, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if props, ok := s.patterns[resourceTypeID]; ok {
		return props, true, nil
	}

	best := ""
	var bestProps dms.ServiceProperties
	for pattern, props := range s.patterns {
		if !strings.HasSuffix(pattern, "*") {
			continue
		}
		prefix := strings.TrimSuffix(pattern, "*")
		if strings.HasPrefix(resourceTypeID, prefix) && len(prefix) > len(best) {
			best = prefix
			bestProps = props
		}
	}
	if best == "" {
		return dms.ServiceProperties{}, false, nil
	}
	return bestProps, true, nil
}

// Patterns returns the registered patterns in sorted order.
func (s *Static) Patterns() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.patterns))
	for pattern := range s.patterns {
		out = append(out, pattern)
	}
	sort.Strings(out)
	return out
}

// Verify interface compliance.
var _ Resolver = (*Static)(nil)
