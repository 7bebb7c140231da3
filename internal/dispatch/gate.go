package dispatch

import (
	"context"
	"errors"

	"github.com/goliatone/go-triggers/internal/logging"
	"github.com/goliatone/go-triggers/internal/sourceconfig"
	"github.com/goliatone/go-triggers/pkg/interfaces"
)

// ErrSourceNameRequired indicates that a gate or dispatcher was constructed
// without a source name.
var ErrSourceNameRequired = errors.New("dispatch: source name is required")

// Gate resolves and caches the enabled flag for one event source. The flag is
// looked up exactly once at construction and never changes afterwards, even if
// the underlying configuration is edited mid-invocation. Configuration lookup
// failures resolve to enabled (fail-open): a misconfigured or unreachable
// configuration store must never silently disable business logic.
type Gate struct {
	source  string
	enabled bool
}

// GateOption configures gate construction.
type GateOption func(*gateOptions)

type gateOptions struct {
	logger interfaces.Logger
}

// WithGateLogger injects the logger used to report absorbed lookup failures.
func WithGateLogger(logger interfaces.Logger) GateOption {
	return func(o *gateOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewGate binds a gate to a source name and resolves its enabled flag from the
// configuration lookup. An absent record or a failed lookup both resolve to
// enabled; lookup failures are logged and never propagated.
func NewGate(ctx context.Context, source string, lookup sourceconfig.Lookup, opts ...GateOption) (*Gate, error) {
	if source == "" {
		return nil, ErrSourceNameRequired
	}

	options := gateOptions{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&options)
	}

	return &Gate{
		source:  source,
		enabled: resolveEnabled(ctx, lookup, source, options.logger),
	}, nil
}

// Source returns the event source name the gate is bound to.
func (g *Gate) Source() string {
	return g.source
}

// Enabled reports the cached resolution. It is pure and idempotent; repeated
// calls never re-query the configuration store.
func (g *Gate) Enabled() bool {
	if g == nil {
		return true
	}
	return g.enabled
}

// SourceEnabled performs a one-off fail-open check for call sites that do not
// want to construct a gate. No state is cached across calls.
func SourceEnabled(ctx context.Context, lookup sourceconfig.Lookup, source string) bool {
	return resolveEnabled(ctx, lookup, source, logging.NoOp())
}

func resolveEnabled(ctx context.Context, lookup sourceconfig.Lookup, source string, logger interfaces.Logger) bool {
	if lookup == nil {
		return true
	}
	record, err := lookup.Get(ctx, source)
	if err != nil {
		if !errors.Is(err, sourceconfig.ErrSourceNotFound) {
			logger.Warn("gate.lookup.failed", "source", source, "error", err)
		}
		return true
	}
	return record.Enabled
}
