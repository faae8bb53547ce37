package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aretw0/turing/internal/logging"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/definition"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// Exit codes returned through ExitError.
const (
	ExitRunFailure = 1
	ExitConfig     = 2
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode maps err to a process exit code: 0 for nil, the ExitError code
// when there is one, 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitRunFailure
}

// configError marks definition problems with ExitConfig.
func configError(err error) error {
	if definition.IsInvalid(err) {
		return &ExitError{Code: ExitConfig, Err: err}
	}
	return err
}

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sc.sigCh:
			sc.mu.Lock()
			sc.sigVal = sig
			sc.mu.Unlock()
			sc.Cancel()
		case <-sc.Context.Done():
			// Context cancelled elsewhere
		}
		sc.stop.Do(func() {
			signal.Stop(sc.sigCh)
		})
	}()

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// createLogger configures the application logger.
// In debug mode, it writes to Stderr (to separate from Stdout trace output).
func createLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// serviceLogger logs to stderr at $TURING_LOG_LEVEL (default info), or debug when requested.
// Long-running commands always log.
func serviceLogger(debug bool) *slog.Logger {
	if debug {
		return logging.New(slog.LevelDebug)
	}
	return logging.New(logging.ParseLevel(os.Getenv("TURING_LOG_LEVEL")))
}

// StoreOptions selects the definition store backend.
type StoreOptions struct {
	RedisAddr   string
	RedisPrefix string
	TTL         time.Duration
}

// openStore returns a Redis store when an address is configured, a memory store otherwise.
func openStore(ctx context.Context, opts StoreOptions, logger *slog.Logger) (ports.DefinitionStore, func() error, error) {
	if opts.RedisAddr == "" {
		logger.Info("using in-memory definition store")
		return wrapStore(memory.NewStore(), logger), func() error { return nil }, nil
	}

	var redisOpts []redis.Option
	if opts.RedisPrefix != "" {
		redisOpts = append(redisOpts, redis.WithPrefix(opts.RedisPrefix))
	}
	if opts.TTL > 0 {
		redisOpts = append(redisOpts, redis.WithTTL(opts.TTL))
	}

	store := redis.New(opts.RedisAddr, os.Getenv("TURING_REDIS_PASSWORD"), 0, redisOpts...)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.RedisAddr, err)
	}

	logger.Info("using redis definition store", "addr", opts.RedisAddr)
	return wrapStore(store, logger), store.Close, nil
}

// wrapStore validates definitions before they are stored and logs store calls.
func wrapStore(store ports.DefinitionStore, logger *slog.Logger) ports.DefinitionStore {
	return middleware.Chain(store,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewValidationMiddleware(),
	)
}
