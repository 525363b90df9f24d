package httpop

import (
	"sync"

	"github.com/speakeasy-api/schemagraph/typegraph"
)

// Cache memoizes resolved operations for one compilation so that every caller observes the same
// Operation, and therefore the same spread body model, for a given operation node.
// Entries are never evicted.
type Cache struct {
	resolver Resolver

	mu         sync.Mutex
	operations map[*typegraph.Operation]*Operation
}

var _ Resolver = (*Cache)(nil)

// NewCache returns a cache in front of resolver. A nil resolver uses DefaultResolver.
func NewCache(resolver Resolver) *Cache {
	if resolver == nil {
		resolver = DefaultResolver{}
	}
	return &Cache{
		resolver:   resolver,
		operations: make(map[*typegraph.Operation]*Operation),
	}
}

// Resolve returns the cached shape of op, resolving and recording it on first use.
// Resolution errors are not cached.
func (c *Cache) Resolve(op *typegraph.Operation) (*Operation, error) {
	if op == nil {
		return nil, ErrNilOperation
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.operations[op]; ok {
		return cached, nil
	}

	resolved, err := c.resolver.Resolve(op)
	if err != nil {
		return nil, err
	}
	c.operations[op] = resolved

	return resolved, nil
}

// Len returns the number of cached operations.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.operations)
}
