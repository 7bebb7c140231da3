package commands

import sourcescmd "github.com/goliatone/go-triggers/internal/commands/sources"

// Source management messages exported for host dispatchers and CLIs.
type (
	UpsertSourceCommand  = sourcescmd.UpsertSourceCommand
	EnableSourceCommand  = sourcescmd.EnableSourceCommand
	DisableSourceCommand = sourcescmd.DisableSourceCommand
	DeleteSourceCommand  = sourcescmd.DeleteSourceCommand
)
