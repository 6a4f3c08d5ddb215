package registry

import (
	"context"
	"fmt"
	"sync"
)

// Resolver handles one _extension(name, args) call.
type Resolver func(ctx context.Context, args map[string]interface{}) (interface{}, error)

var (
	mu        sync.RWMutex
	resolvers = make(map[string]Resolver)
)

// Register adds an extension resolver. Call from init() in custom packages.
func Register(name string, r Resolver) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := resolvers[name]; ok {
		panic("graphql/registry: duplicate resolver " + name)
	}
	resolvers[name] = r
}

// Resolve dispatches to the named resolver.
func Resolve(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	mu.RLock()
	r, ok := resolvers[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown extension %q", name)
	}
	return r(ctx, args)
}
