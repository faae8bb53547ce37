// Package middleware wraps a DefinitionStore to add behavior around it.
package middleware

import (
	"context"

	"github.com/aretw0/turing/pkg/ports"
)

// Middleware allows wrapping a DefinitionStore to add behavior.
type Middleware func(ports.DefinitionStore) ports.DefinitionStore

// Chain wraps store with mws. The first middleware is the outermost one.
func Chain(store ports.DefinitionStore, mws ...Middleware) ports.DefinitionStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

// ping forwards health checks to stores that support them.
func ping(ctx context.Context, store ports.DefinitionStore) error {
	if p, ok := store.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}
