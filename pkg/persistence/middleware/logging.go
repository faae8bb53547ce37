package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.DefinitionStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level and failures at warn.
// A missing definition is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DefinitionStore) ports.DefinitionStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, name string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if name != "" {
		attrs = append(attrs, "machine", name)
	}
	if err != nil && !errors.Is(err, domain.ErrDefinitionNotFound) {
		m.logger.WarnContext(ctx, "store call failed", append(attrs, "error", err)...)
		return
	}
	m.logger.DebugContext(ctx, "store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, name string, def *definition.Definition) error {
	start := time.Now()
	err := m.next.Save(ctx, name, def)
	m.log(ctx, "save", name, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, name string) (*definition.Definition, error) {
	start := time.Now()
	def, err := m.next.Load(ctx, name)
	m.log(ctx, "load", name, start, err)
	return def, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, name string) error {
	start := time.Now()
	err := m.next.Delete(ctx, name)
	m.log(ctx, "delete", name, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	names, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return names, err
}

func (m *loggingMiddleware) Ping(ctx context.Context) error {
	return ping(ctx, m.next)
}
