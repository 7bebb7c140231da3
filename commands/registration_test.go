package commands

import (
	"context"
	"errors"
	"testing"

	triggers "github.com/goliatone/go-triggers"
)

type stubRegistry struct {
	handlers []any
	err      error
}

func (s *stubRegistry) RegisterCommand(handler any) error {
	if s.err != nil {
		return s.err
	}
	s.handlers = append(s.handlers, handler)
	return nil
}

type stubSubscription struct {
	unsubscribed bool
}

func (s *stubSubscription) Unsubscribe() { s.unsubscribed = true }

type stubDispatcher struct {
	subs []*stubSubscription
}

func (s *stubDispatcher) RegisterCommand(any) (CommandSubscription, error) {
	sub := &stubSubscription{}
	s.subs = append(s.subs, sub)
	return sub, nil
}

func newTestModule(t *testing.T) *triggers.Module {
	t.Helper()
	module, err := triggers.New(triggers.DefaultConfig())
	if err != nil {
		t.Fatalf("triggers.New() error = %v", err)
	}
	return module
}

func TestRegisterSourceCommandsRequiresModule(t *testing.T) {
	if _, err := RegisterSourceCommands(nil, RegistrationOptions{}); !errors.Is(err, ErrModuleRequired) {
		t.Fatalf("expected ErrModuleRequired, got %v", err)
	}
}

func TestRegisterSourceCommandsBuildsHandlers(t *testing.T) {
	module := newTestModule(t)
	registry := &stubRegistry{}
	dispatcher := &stubDispatcher{}

	result, err := RegisterSourceCommands(module, RegistrationOptions{
		Registry:   registry,
		Dispatcher: dispatcher,
	})
	if err != nil {
		t.Fatalf("RegisterSourceCommands() error = %v", err)
	}

	if len(result.Handlers) != 4 {
		t.Fatalf("expected 4 handlers, got %d", len(result.Handlers))
	}
	if len(registry.handlers) != 4 {
		t.Fatalf("expected registry to receive 4 handlers, got %d", len(registry.handlers))
	}
	if len(result.Subscriptions) != 4 {
		t.Fatalf("expected 4 subscriptions, got %d", len(result.Subscriptions))
	}
}

func TestRegisterSourceCommandsCollectsRegistryErrors(t *testing.T) {
	module := newTestModule(t)
	wantErr := errors.New("registry full")
	registry := &stubRegistry{err: wantErr}

	result, err := RegisterSourceCommands(module, RegistrationOptions{Registry: registry})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if len(result.Handlers) != 4 {
		t.Fatalf("expected handlers to be built despite registry errors, got %d", len(result.Handlers))
	}
}

func TestRegisteredHandlersOperateOnModuleRepository(t *testing.T) {
	ctx := context.Background()
	module := newTestModule(t)

	result, err := RegisterSourceCommands(module, RegistrationOptions{})
	if err != nil {
		t.Fatalf("RegisterSourceCommands() error = %v", err)
	}

	type disabler interface {
		Execute(ctx context.Context, msg DisableSourceCommand) error
	}

	var found bool
	for _, handler := range result.Handlers {
		h, ok := handler.(disabler)
		if !ok {
			continue
		}
		found = true
		if err := h.Execute(ctx, DisableSourceCommand{Name: "AccountSource"}); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
	}
	if !found {
		t.Fatal("expected a disable handler in the registration result")
	}

	if module.SourceEnabled(ctx, "AccountSource") {
		t.Fatal("expected disabled source after command execution")
	}
}
