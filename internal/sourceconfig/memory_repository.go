package sourceconfig

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository stores source configuration in-memory for tests and
// lightweight deployments.
type MemoryRepository struct {
	mu          sync.RWMutex
	sources     map[string]Source
	broadcaster *changeBroadcaster
}

// NewMemoryRepository constructs an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		sources:     make(map[string]Source),
		broadcaster: newChangeBroadcaster(),
	}
}

// List returns the stored source configurations ordered by name.
func (r *MemoryRepository) List(context.Context) ([]*Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Source, 0, len(r.sources))
	for _, source := range r.sources {
		cloned := cloneSource(source)
		out = append(out, &cloned)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Get retrieves a source configuration by name.
func (r *MemoryRepository) Get(_ context.Context, name string) (*Source, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrSourceNameRequired
	}

	r.mu.RLock()
	source, ok := r.sources[trimmed]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrSourceNotFound
	}
	cloned := cloneSource(source)
	return &cloned, nil
}

// Upsert creates or updates the configuration for a source name.
func (r *MemoryRepository) Upsert(_ context.Context, source Source) (*Source, error) {
	name := strings.TrimSpace(source.Name)
	if name == "" {
		return nil, ErrSourceNameRequired
	}
	source.Name = name

	now := time.Now().UTC()
	stored := cloneSource(source)
	stored.UpdatedAt = now

	r.mu.Lock()
	existing, exists := r.sources[name]
	if exists {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == uuid.Nil {
			stored.ID = uuid.New()
		}
		stored.CreatedAt = now
	}
	r.sources[name] = stored
	r.mu.Unlock()

	eventType := ChangeCreated
	if exists {
		eventType = ChangeUpdated
	}
	r.broadcaster.Broadcast(newChangeEvent(eventType, stored))

	result := cloneSource(stored)
	return &result, nil
}

// Delete removes the configuration for a source name.
func (r *MemoryRepository) Delete(_ context.Context, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrSourceNameRequired
	}

	r.mu.Lock()
	source, ok := r.sources[trimmed]
	if !ok {
		r.mu.Unlock()
		return ErrSourceNotFound
	}
	delete(r.sources, trimmed)
	r.mu.Unlock()

	r.broadcaster.Broadcast(newChangeEvent(ChangeDeleted, source))
	return nil
}

// Subscribe delivers change events until the context is cancelled.
func (r *MemoryRepository) Subscribe(ctx context.Context) (<-chan ChangeEvent, error) {
	return r.broadcaster.Subscribe(ctx)
}
