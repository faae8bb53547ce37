package ports

import (
	"context"

	"github.com/aretw0/turing/pkg/definition"
)

// DefinitionStore persists machine definitions by name.
// It stores configuration only; running machines are never persisted.
type DefinitionStore interface {
	// Save creates or replaces the definition stored under name.
	Save(ctx context.Context, name string, def *definition.Definition) error

	// Load retrieves a definition.
	// Returns domain.ErrDefinitionNotFound if nothing is stored under name.
	Load(ctx context.Context, name string) (*definition.Definition, error)

	// Delete removes a definition. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}
