package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-triggers/internal/logging"
	"github.com/goliatone/go-triggers/internal/sourceconfig"
	"github.com/goliatone/go-triggers/pkg/interfaces"
)

// ErrHandlerRequired indicates that a dispatcher was constructed without a handler.
var ErrHandlerRequired = errors.New("dispatch: handler is required")

// ErrUnknownStage indicates that an event carried a stage the dispatcher does not route.
var ErrUnknownStage = errors.New("dispatch: unknown stage")

// Dispatcher binds one event source to a handler and routes lifecycle events
// to the matching callback. One dispatcher is created per triggering
// invocation and discarded when the invocation completes; its gate is resolved
// once at construction.
type Dispatcher struct {
	source  string
	handler Handler
	gate    *Gate
	logger  interfaces.Logger
}

// DispatcherOption configures dispatcher construction.
type DispatcherOption func(*dispatcherOptions)

type dispatcherOptions struct {
	logger interfaces.Logger
}

// WithLogger injects the logger used for dispatch tracing and gate warnings.
func WithLogger(logger interfaces.Logger) DispatcherOption {
	return func(o *dispatcherOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewDispatcher constructs a dispatcher bound to the named source. The gate's
// enabled flag is resolved synchronously from the lookup before the dispatcher
// is usable.
func NewDispatcher(ctx context.Context, source string, handler Handler, lookup sourceconfig.Lookup, opts ...DispatcherOption) (*Dispatcher, error) {
	if handler == nil {
		return nil, ErrHandlerRequired
	}

	options := dispatcherOptions{logger: logging.NoOp()}
	for _, opt := range opts {
		opt(&options)
	}

	gate, err := NewGate(ctx, source, lookup, WithGateLogger(options.logger))
	if err != nil {
		return nil, err
	}

	return &Dispatcher{
		source:  source,
		handler: handler,
		gate:    gate,
		logger:  options.logger,
	}, nil
}

// Source returns the event source name the dispatcher is bound to.
func (d *Dispatcher) Source() string {
	return d.source
}

// Gate exposes the resolved gate so handlers can guard their own logic.
func (d *Dispatcher) Gate() *Gate {
	return d.gate
}

// Dispatch routes one lifecycle event to the matching handler callback. The
// dispatcher does not gate automatically; handler implementations check the
// gate themselves so that the convention stays visible at the override site.
func (d *Dispatcher) Dispatch(ctx context.Context, event Event) error {
	d.logger.Debug("dispatch.event",
		"source", d.source,
		"stage", string(event.Stage),
		"enabled", d.gate.Enabled(),
	)

	switch event.Stage {
	case StageBeforeCreate:
		return d.handler.BeforeCreate(ctx, event.Records)
	case StageBeforeUpdate:
		return d.handler.BeforeUpdate(ctx, event.Old, event.New)
	case StageBeforeDelete:
		return d.handler.BeforeDelete(ctx, event.Old)
	case StageAfterCreate:
		return d.handler.AfterCreate(ctx, event.Records)
	case StageAfterUpdate:
		return d.handler.AfterUpdate(ctx, event.Old, event.New)
	case StageAfterDelete:
		return d.handler.AfterDelete(ctx, event.Old)
	case StageAfterRestore:
		return d.handler.AfterRestore(ctx, event.Records)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStage, event.Stage)
	}
}
