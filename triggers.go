package triggers

import (
	"context"
	"errors"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/goliatone/go-triggers/internal/dispatch"
	"github.com/goliatone/go-triggers/internal/logging"
	"github.com/goliatone/go-triggers/internal/logging/gologger"
	"github.com/goliatone/go-triggers/internal/sourceconfig"
	"github.com/goliatone/go-triggers/pkg/interfaces"
	"github.com/uptrace/bun"
)

// ErrDatabaseRequired indicates the bun storage provider was selected without a database.
var ErrDatabaseRequired = errors.New("triggers: bun storage provider requires a database")

// Record is the loosely-typed representation of a platform record.
type Record = dispatch.Record

// RecordMap indexes records by identity.
type RecordMap = dispatch.RecordMap

// Stage identifies the lifecycle stage of a record-change event.
type Stage = dispatch.Stage

// Lifecycle stages routed by the dispatcher.
const (
	StageBeforeCreate = dispatch.StageBeforeCreate
	StageBeforeUpdate = dispatch.StageBeforeUpdate
	StageBeforeDelete = dispatch.StageBeforeDelete
	StageAfterCreate  = dispatch.StageAfterCreate
	StageAfterUpdate  = dispatch.StageAfterUpdate
	StageAfterDelete  = dispatch.StageAfterDelete
	StageAfterRestore = dispatch.StageAfterRestore
)

// Event carries one lifecycle notification from the host platform.
type Event = dispatch.Event

// Handler declares the lifecycle callbacks a trigger handler may implement.
type Handler = dispatch.Handler

// NoopHandler satisfies Handler with empty callback bodies, for embedding.
type NoopHandler = dispatch.NoopHandler

// Gate resolves and caches the enabled flag for one event source.
type Gate = dispatch.Gate

// Dispatcher routes lifecycle events for one source to a handler.
type Dispatcher = dispatch.Dispatcher

// Source captures the persisted enablement toggle for a named event source.
type Source = sourceconfig.Source

// SourceRepository exposes persistence operations for source configuration.
type SourceRepository = sourceconfig.Repository

// SourceLookup is the narrow read surface gates depend on.
type SourceLookup = sourceconfig.Lookup

// SourceChangeEvent reports configuration mutations to subscribers.
type SourceChangeEvent = sourceconfig.ChangeEvent

// Logger re-exports the logging contract expected by the module.
type Logger = interfaces.Logger

// LoggerProvider re-exports the named-logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

var (
	ErrSourceNotFound     = sourceconfig.ErrSourceNotFound
	ErrSourceNameRequired = dispatch.ErrSourceNameRequired
	ErrHandlerRequired    = dispatch.ErrHandlerRequired
	ErrUnknownStage       = dispatch.ErrUnknownStage
)

// Module is the top level triggers runtime façade. It owns the source
// configuration repository and hands out gates and dispatchers bound to it.
type Module struct {
	cfg            Config
	db             *bun.DB
	repo           sourceconfig.Repository
	cacheService   repocache.CacheService
	keySerializer  repocache.KeySerializer
	loggerProvider interfaces.LoggerProvider
}

// Option overrides module wiring during construction.
type Option func(*Module)

// WithDB supplies the bun database used by the bun storage provider.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		m.db = db
	}
}

// WithRepository injects a custom source configuration repository, bypassing
// the storage provider selection entirely.
func WithRepository(repo sourceconfig.Repository) Option {
	return func(m *Module) {
		if repo != nil {
			m.repo = repo
		}
	}
}

// WithCache overrides the cache service used to decorate configuration reads.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(m *Module) {
		m.cacheService = service
		m.keySerializer = serializer
	}
}

// WithLoggerProvider injects the provider used to scope module loggers.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.loggerProvider = provider
	}
}

// New constructs a triggers module using the provided configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if err := m.configureLogging(); err != nil {
		return nil, err
	}
	if err := m.configureRepository(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Module) configureLogging() error {
	if m.loggerProvider != nil || !m.cfg.Features.Logger {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(m.cfg.Logging.Provider), "gologger") {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     m.cfg.Logging.Level,
			Format:    m.cfg.Logging.Format,
			AddSource: m.cfg.Logging.AddSource,
			Focus:     m.cfg.Logging.Focus,
		})
		if err != nil {
			return err
		}
		m.loggerProvider = provider
	}
	return nil
}

func (m *Module) configureRepository() error {
	if m.repo != nil {
		return nil
	}

	switch strings.ToLower(strings.TrimSpace(m.cfg.Storage.Provider)) {
	case "bun":
		if m.db == nil {
			return ErrDatabaseRequired
		}
		m.configureCacheDefaults()
		m.repo = sourceconfig.NewBunRepositoryWithCache(m.db, m.cacheService, m.keySerializer)
	default:
		m.repo = sourceconfig.NewMemoryRepository()
	}
	return nil
}

func (m *Module) configureCacheDefaults() {
	if !m.cfg.Cache.Enabled {
		return
	}

	if m.cacheService == nil {
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Cache.DefaultTTL > 0 {
			cacheCfg.TTL = m.cfg.Cache.DefaultTTL
		}
		service, err := repocache.NewCacheService(cacheCfg)
		if err == nil {
			m.cacheService = service
		}
	}

	if m.cacheService != nil && m.keySerializer == nil {
		m.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

// Sources returns the configured source configuration repository.
func (m *Module) Sources() SourceRepository {
	return m.repo
}

// LoggerProvider exposes the configured logger provider, which may be nil.
func (m *Module) LoggerProvider() LoggerProvider {
	return m.loggerProvider
}

// Gate constructs a gate bound to the named source, resolving its enabled
// flag from the module repository.
func (m *Module) Gate(ctx context.Context, source string) (*Gate, error) {
	return dispatch.NewGate(ctx, source, m.repo,
		dispatch.WithGateLogger(logging.DispatchLogger(m.loggerProvider)))
}

// Dispatcher constructs a dispatcher for one triggering invocation, binding
// the named source to the supplied handler.
func (m *Module) Dispatcher(ctx context.Context, source string, handler Handler) (*Dispatcher, error) {
	return dispatch.NewDispatcher(ctx, source, handler, m.repo,
		dispatch.WithLogger(logging.DispatchLogger(m.loggerProvider)))
}

// SourceEnabled performs a one-off fail-open check against the module repository.
func (m *Module) SourceEnabled(ctx context.Context, source string) bool {
	return dispatch.SourceEnabled(ctx, m.repo, source)
}
