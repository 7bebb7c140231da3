package sourceconfig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewSourceRepository creates the generic bun repository for Source records,
// keyed by the unique source name.
func NewSourceRepository(db *bun.DB) repository.Repository[*Source] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Source]{
		NewRecord: func() *Source { return &Source{} },
		GetID: func(s *Source) uuid.UUID {
			return s.ID
		},
		SetID: func(s *Source, id uuid.UUID) {
			s.ID = id
		},
		GetIdentifier: func() string {
			return "name"
		},
		GetIdentifierValue: func(s *Source) string {
			return s.Name
		},
	})
}

// BunRepository persists source configuration using a Bun-backed database.
type BunRepository struct {
	repo        repository.Repository[*Source]
	broadcaster *changeBroadcaster
}

// NewBunRepository constructs a Bun-backed repository without caching.
func NewBunRepository(db *bun.DB) *BunRepository {
	return NewBunRepositoryWithCache(db, nil, nil)
}

// NewBunRepositoryWithCache constructs a Bun-backed repository, wrapping reads
// in the cache decorator when both cache service and key serializer are set.
func NewBunRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunRepository {
	base := NewSourceRepository(db)
	if cacheService != nil && keySerializer != nil {
		base = repositorycache.New(base, cacheService, keySerializer)
	}
	return &BunRepository{
		repo:        base,
		broadcaster: newChangeBroadcaster(),
	}
}

// List returns the stored source configurations ordered by name.
func (r *BunRepository) List(ctx context.Context) ([]*Source, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("name ASC")
	}))
	return records, err
}

// Get retrieves a source configuration by name, returning ErrSourceNotFound when absent.
func (r *BunRepository) Get(ctx context.Context, name string) (*Source, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrSourceNameRequired
	}
	record, err := r.repo.GetByIdentifier(ctx, trimmed)
	if err != nil {
		return nil, mapRepositoryError(err, trimmed)
	}
	return record, nil
}

// Upsert creates or updates the configuration for a source name.
func (r *BunRepository) Upsert(ctx context.Context, source Source) (*Source, error) {
	name := strings.TrimSpace(source.Name)
	if name == "" {
		return nil, ErrSourceNameRequired
	}
	source.Name = name

	existing, err := r.Get(ctx, name)
	created := false
	switch {
	case errors.Is(err, ErrSourceNotFound):
		created = true
	case err != nil:
		return nil, err
	}

	now := time.Now().UTC()
	record := cloneSource(source)
	record.UpdatedAt = now

	var stored *Source
	if created {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		record.CreatedAt = now
		stored, err = r.repo.Create(ctx, &record)
	} else {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		stored, err = r.repo.Update(ctx, &record)
	}
	if err != nil {
		return nil, mapRepositoryError(err, name)
	}

	eventType := ChangeUpdated
	if created {
		eventType = ChangeCreated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, *stored))
	return stored, nil
}

// Delete removes the configuration for a source name.
func (r *BunRepository) Delete(ctx context.Context, name string) error {
	record, err := r.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &Source{ID: record.ID}); err != nil {
		return mapRepositoryError(err, name)
	}
	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, *record))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *BunRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return ErrSourceNotFound
	}
	return fmt.Errorf("source repository error (%s): %w", key, err)
}
