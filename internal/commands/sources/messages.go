package sourcescmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	upsertSourceMessageType  = "triggers.sources.upsert"
	enableSourceMessageType  = "triggers.sources.enable"
	disableSourceMessageType = "triggers.sources.disable"
	deleteSourceMessageType  = "triggers.sources.delete"
)

// UpsertSourceCommand creates or replaces the configuration for an event source.
type UpsertSourceCommand struct {
	Name        string         `json:"name"`
	Enabled     bool           `json:"enabled"`
	Description *string        `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Type implements command.Message.
func (UpsertSourceCommand) Type() string { return upsertSourceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m UpsertSourceCommand) Validate() error {
	return validateSourceName(m.Name, "triggers.sources.upsert")
}

// EnableSourceCommand turns dispatch on for an event source, creating the
// configuration record when none exists.
type EnableSourceCommand struct {
	Name string `json:"name"`
}

// Type implements command.Message.
func (EnableSourceCommand) Type() string { return enableSourceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m EnableSourceCommand) Validate() error {
	return validateSourceName(m.Name, "triggers.sources.enable")
}

// DisableSourceCommand turns dispatch off for an event source, creating the
// configuration record when none exists.
type DisableSourceCommand struct {
	Name string `json:"name"`
}

// Type implements command.Message.
func (DisableSourceCommand) Type() string { return disableSourceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DisableSourceCommand) Validate() error {
	return validateSourceName(m.Name, "triggers.sources.disable")
}

// DeleteSourceCommand removes the configuration record for an event source.
// Deleting a record returns the source to its default-enabled state.
type DeleteSourceCommand struct {
	Name string `json:"name"`
}

// Type implements command.Message.
func (DeleteSourceCommand) Type() string { return deleteSourceMessageType }

// Validate ensures the message carries the required fields before reaching handlers.
func (m DeleteSourceCommand) Validate() error {
	return validateSourceName(m.Name, "triggers.sources.delete")
}

func validateSourceName(name, messageType string) error {
	if strings.TrimSpace(name) == "" {
		return validation.Errors{
			"name": validation.NewError(messageType+".name_required", "name is required"),
		}
	}
	return nil
}
