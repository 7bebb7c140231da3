package sourceconfig

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrSourceNotFound indicates that no configuration exists for the requested source.
var ErrSourceNotFound = errors.New("sourceconfig: source not found")

// ErrSourceNameRequired indicates that source operations require a non-empty name.
var ErrSourceNameRequired = errors.New("sourceconfig: source name is required")

// Source captures the persisted enablement toggle for a named event source.
// Absence of a record for a name is a valid state and resolves to enabled.
type Source struct {
	bun.BaseModel `bun:"table:trigger_sources,alias:ts"`

	ID          uuid.UUID      `bun:",pk,type:uuid"          json:"id"`
	Name        string         `bun:"name,notnull,unique"    json:"name"`
	Enabled     bool           `bun:"enabled,notnull,default:true" json:"enabled"`
	Description *string        `bun:"description"            json:"description,omitempty"`
	Metadata    map[string]any `bun:"metadata,type:jsonb"    json:"metadata,omitempty"`
	CreatedAt   time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
}

// Lookup is the narrow read surface gates and one-off checks depend on.
// Implementations signal an unconfigured source with ErrSourceNotFound.
type Lookup interface {
	Get(ctx context.Context, name string) (*Source, error)
}

// Repository exposes persistence operations for event source configuration.
type Repository interface {
	Lookup
	List(ctx context.Context) ([]*Source, error)
	Upsert(ctx context.Context, source Source) (*Source, error)
	Delete(ctx context.Context, name string) error
	Subscribe(ctx context.Context) (<-chan ChangeEvent, error)
}

// ChangeType enumerates source configuration change events.
type ChangeType string

const (
	// ChangeCreated indicates a new source configuration was persisted.
	ChangeCreated ChangeType = "created"
	// ChangeUpdated indicates an existing source configuration was modified.
	ChangeUpdated ChangeType = "updated"
	// ChangeDeleted indicates a source configuration was removed.
	ChangeDeleted ChangeType = "deleted"
)

// ChangeEvent reports configuration mutations to interested subscribers.
type ChangeEvent struct {
	Type   ChangeType
	Source Source
}

func cloneSource(src Source) Source {
	cloned := src
	if src.Metadata != nil {
		cloned.Metadata = maps.Clone(src.Metadata)
	}
	if src.Description != nil {
		desc := *src.Description
		cloned.Description = &desc
	}
	return cloned
}

func newChangeEvent(changeType ChangeType, source Source) ChangeEvent {
	return ChangeEvent{
		Type:   changeType,
		Source: cloneSource(source),
	}
}
