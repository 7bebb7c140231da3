package commands

import (
	"errors"

	triggers "github.com/goliatone/go-triggers"
	sourcescmd "github.com/goliatone/go-triggers/internal/commands/sources"
	"github.com/goliatone/go-triggers/internal/logging"
	"github.com/goliatone/go-triggers/pkg/interfaces"
)

// ErrModuleRequired indicates registration was attempted without a module.
var ErrModuleRequired = errors.New("commands: module is required")

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterSourceCommands builds the source management command handlers for the
// provided module and optionally registers them with registry/dispatcher
// integrations.
func RegisterSourceCommands(module *triggers.Module, opts RegistrationOptions) (*RegistrationResult, error) {
	if module == nil {
		return nil, ErrModuleRequired
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = module.LoggerProvider()
	}
	logger := logging.CommandsLogger(provider)
	repo := module.Sources()

	result := &RegistrationResult{
		Handlers:      make([]any, 0, 4),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			sub, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
				return
			}
			if sub != nil {
				result.Subscriptions = append(result.Subscriptions, sub)
			}
		}
	}

	register(sourcescmd.NewUpsertSourceHandler(repo, logger))
	register(sourcescmd.NewEnableSourceHandler(repo, logger))
	register(sourcescmd.NewDisableSourceHandler(repo, logger))
	register(sourcescmd.NewDeleteSourceHandler(repo, logger))

	return result, errs
}
