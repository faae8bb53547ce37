package middleware

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/ports"
)

type validationMiddleware struct {
	next ports.DefinitionStore
}

// NewValidationMiddleware creates a middleware that refuses to save
// definitions which do not compile, so every stored machine can run.
func NewValidationMiddleware() Middleware {
	return func(next ports.DefinitionStore) ports.DefinitionStore {
		return &validationMiddleware{next: next}
	}
}

func (m *validationMiddleware) Save(ctx context.Context, name string, def *definition.Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition for %q", definition.ErrInvalidDefinition, name)
	}
	if _, err := def.Compile(); err != nil {
		return fmt.Errorf("refusing to save %q: %w", name, err)
	}
	return m.next.Save(ctx, name, def)
}

func (m *validationMiddleware) Load(ctx context.Context, name string) (*definition.Definition, error) {
	return m.next.Load(ctx, name)
}

func (m *validationMiddleware) Delete(ctx context.Context, name string) error {
	return m.next.Delete(ctx, name)
}

func (m *validationMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *validationMiddleware) Ping(ctx context.Context) error {
	return ping(ctx, m.next)
}
