package main

import (
	"context"
	"fmt"
	"log"

	"github.com/goliatone/go-command/dispatcher"
	triggers "github.com/goliatone/go-triggers"
	triggerscmds "github.com/goliatone/go-triggers/commands"
	sourcescmd "github.com/goliatone/go-triggers/internal/commands/sources"
)

// commandBus adapts go-command's package level dispatcher to the
// registration surface expected by RegisterSourceCommands.
type commandBus struct{}

func (commandBus) RegisterCommand(handler any) (triggerscmds.CommandSubscription, error) {
	switch h := handler.(type) {
	case *sourcescmd.UpsertSourceHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *sourcescmd.EnableSourceHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *sourcescmd.DisableSourceHandler:
		return dispatcher.SubscribeCommand(h), nil
	case *sourcescmd.DeleteSourceHandler:
		return dispatcher.SubscribeCommand(h), nil
	default:
		return nil, fmt.Errorf("unsupported handler type %T", handler)
	}
}

type accountAudit struct {
	triggers.NoopHandler
	gate *triggers.Gate
}

func (h *accountAudit) AfterCreate(_ context.Context, records []triggers.Record) error {
	if !h.gate.Enabled() {
		return nil
	}
	for _, record := range records {
		fmt.Printf("audit: account created: %v\n", record["name"])
	}
	return nil
}

func dispatchAfterCreate(ctx context.Context, module *triggers.Module, source string) error {
	handler := &accountAudit{}
	disp, err := module.Dispatcher(ctx, source, handler)
	if err != nil {
		return err
	}
	handler.gate = disp.Gate()

	event := triggers.Event{
		Stage:   triggers.StageAfterCreate,
		Records: []triggers.Record{{"name": "Acme"}},
	}
	if err := disp.Dispatch(ctx, event); err != nil {
		return err
	}
	fmt.Printf("%s enabled: %t\n", source, disp.Gate().Enabled())
	return nil
}

func main() {
	ctx := context.Background()

	cfg := triggers.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "pretty"

	module, err := triggers.New(cfg)
	if err != nil {
		log.Fatalf("triggers: %v", err)
	}

	result, err := triggerscmds.RegisterSourceCommands(module, triggerscmds.RegistrationOptions{
		Dispatcher: commandBus{},
	})
	if err != nil {
		log.Fatalf("register commands: %v", err)
	}
	defer func() {
		for _, sub := range result.Subscriptions {
			sub.Unsubscribe()
		}
	}()

	if err := dispatcher.Dispatch(ctx, triggerscmds.DisableSourceCommand{Name: "AccountSource"}); err != nil {
		log.Fatalf("disable AccountSource: %v", err)
	}

	// The gate resolved for this dispatch sees the disabled flag, so the
	// handler performs no work.
	if err := dispatchAfterCreate(ctx, module, "AccountSource"); err != nil {
		log.Fatalf("dispatch: %v", err)
	}

	if err := dispatcher.Dispatch(ctx, triggerscmds.EnableSourceCommand{Name: "AccountSource"}); err != nil {
		log.Fatalf("enable AccountSource: %v", err)
	}

	// Gates resolve once per construction; a fresh dispatcher observes the
	// updated flag.
	if err := dispatchAfterCreate(ctx, module, "AccountSource"); err != nil {
		log.Fatalf("dispatch: %v", err)
	}

	// Sources with no stored configuration default to enabled.
	fmt.Printf("ContactSource enabled: %t\n", module.SourceEnabled(ctx, "ContactSource"))
}
