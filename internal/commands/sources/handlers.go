package sourcescmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-triggers/internal/commands"
	"github.com/goliatone/go-triggers/internal/sourceconfig"
	"github.com/goliatone/go-triggers/pkg/interfaces"
)

// UpsertSourceHandler persists source configuration through the repository.
type UpsertSourceHandler struct {
	inner *commands.Handler[UpsertSourceCommand]
}

// NewUpsertSourceHandler constructs a handler wired to the provided repository.
func NewUpsertSourceHandler(repo sourceconfig.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[UpsertSourceCommand]) *UpsertSourceHandler {
	exec := func(ctx context.Context, msg UpsertSourceCommand) error {
		_, err := repo.Upsert(ctx, sourceconfig.Source{
			Name:        msg.Name,
			Enabled:     msg.Enabled,
			Description: msg.Description,
			Metadata:    msg.Metadata,
		})
		return err
	}

	handlerOpts := []commands.HandlerOption[UpsertSourceCommand]{
		commands.WithLogger[UpsertSourceCommand](logger),
		commands.WithOperation[UpsertSourceCommand]("sources.upsert"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &UpsertSourceHandler{
		inner: commands.NewHandler[UpsertSourceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[UpsertSourceCommand].Execute.
func (h *UpsertSourceHandler) Execute(ctx context.Context, msg UpsertSourceCommand) error {
	return h.inner.Execute(ctx, msg)
}

// EnableSourceHandler flips the enabled flag on, preserving any other stored fields.
type EnableSourceHandler struct {
	inner *commands.Handler[EnableSourceCommand]
}

// NewEnableSourceHandler constructs a handler wired to the provided repository.
func NewEnableSourceHandler(repo sourceconfig.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[EnableSourceCommand]) *EnableSourceHandler {
	exec := func(ctx context.Context, msg EnableSourceCommand) error {
		return setSourceEnabled(ctx, repo, msg.Name, true)
	}

	handlerOpts := []commands.HandlerOption[EnableSourceCommand]{
		commands.WithLogger[EnableSourceCommand](logger),
		commands.WithOperation[EnableSourceCommand]("sources.enable"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &EnableSourceHandler{
		inner: commands.NewHandler[EnableSourceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[EnableSourceCommand].Execute.
func (h *EnableSourceHandler) Execute(ctx context.Context, msg EnableSourceCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DisableSourceHandler flips the enabled flag off, preserving any other stored fields.
type DisableSourceHandler struct {
	inner *commands.Handler[DisableSourceCommand]
}

// NewDisableSourceHandler constructs a handler wired to the provided repository.
func NewDisableSourceHandler(repo sourceconfig.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[DisableSourceCommand]) *DisableSourceHandler {
	exec := func(ctx context.Context, msg DisableSourceCommand) error {
		return setSourceEnabled(ctx, repo, msg.Name, false)
	}

	handlerOpts := []commands.HandlerOption[DisableSourceCommand]{
		commands.WithLogger[DisableSourceCommand](logger),
		commands.WithOperation[DisableSourceCommand]("sources.disable"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DisableSourceHandler{
		inner: commands.NewHandler[DisableSourceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DisableSourceCommand].Execute.
func (h *DisableSourceHandler) Execute(ctx context.Context, msg DisableSourceCommand) error {
	return h.inner.Execute(ctx, msg)
}

// DeleteSourceHandler removes the configuration record entirely.
type DeleteSourceHandler struct {
	inner *commands.Handler[DeleteSourceCommand]
}

// NewDeleteSourceHandler constructs a handler wired to the provided repository.
func NewDeleteSourceHandler(repo sourceconfig.Repository, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSourceCommand]) *DeleteSourceHandler {
	exec := func(ctx context.Context, msg DeleteSourceCommand) error {
		return repo.Delete(ctx, msg.Name)
	}

	handlerOpts := []commands.HandlerOption[DeleteSourceCommand]{
		commands.WithLogger[DeleteSourceCommand](logger),
		commands.WithOperation[DeleteSourceCommand]("sources.delete"),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &DeleteSourceHandler{
		inner: commands.NewHandler[DeleteSourceCommand](exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[DeleteSourceCommand].Execute.
func (h *DeleteSourceHandler) Execute(ctx context.Context, msg DeleteSourceCommand) error {
	return h.inner.Execute(ctx, msg)
}

func setSourceEnabled(ctx context.Context, repo sourceconfig.Repository, name string, enabled bool) error {
	existing, err := repo.Get(ctx, name)
	switch {
	case errors.Is(err, sourceconfig.ErrSourceNotFound):
		_, err = repo.Upsert(ctx, sourceconfig.Source{Name: name, Enabled: enabled})
		return err
	case err != nil:
		return err
	}

	updated := *existing
	updated.Enabled = enabled
	_, err = repo.Upsert(ctx, updated)
	return err
}
