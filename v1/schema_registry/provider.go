package schema_registry

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"github.com/karlseguin/ccache"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultSubjectCacheTTL is how long a "latest" lookup is served from memory.
	DefaultSubjectCacheTTL = 30 * time.Second

	// DefaultSubjectCacheSize bounds the number of subjects kept in memory.
	DefaultSubjectCacheSize = 1000
)

// ErrUnsupportedSchemaType is returned for registry schemas that are not Avro
// (PROTOBUF, JSON).
var ErrUnsupportedSchemaType = errors.New("unsupported schema type")

// Logger is the subset of logger.LoggerClient the Provider uses.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// SchemaStore is a second-level cache of schema text shared between processes.
// A definition is only stored after it resolved, so it never needs invalidation.
type SchemaStore interface {
	GetSchema(ctx context.Context, id int32) (definition string, found bool, err error)
	PutSchema(ctx context.Context, id int32, definition string) error
}

// ProviderConfig tunes the Provider caches.
type ProviderConfig struct {
	// SubjectCacheTTL bounds the staleness of SchemaBySubject. Default: 30s
	SubjectCacheTTL time.Duration

	// SubjectCacheSize is the maximum number of cached subjects. Default: 1000
	SubjectCacheSize int64
}

// Provider resolves registry schemas for the Avro codec and caches the result.
//
// Schemas by id are immutable in the registry and cached for the lifetime of the
// Provider. The latest schema of a subject can change, so it is cached with
// SubjectCacheTTL. Concurrent misses for the same key trigger a single registry call.
type Provider struct {
	registry Registry

	byID   map[int32]*avro.ResolvedSchema
	byIDMu sync.RWMutex

	subjects *ccache.Cache
	ttl      time.Duration

	group singleflight.Group

	store SchemaStore

	logger   Logger
	observer observability.Observer
}

// NewProvider creates a Provider on top of registry.
//
// Parameters:
//   - registry: The registry to fetch schema text from
//   - cfg: Cache settings; zero values select the defaults
//
// Returns:
//   - *Provider: A provider ready to be handed to avro.NewCodec
//
// Example:
//
//	client, err := schema_registry.NewClient(schema_registry.Config{URL: "http://localhost:8081"})
//	if err != nil {
//	    return err
//	}
//	provider := schema_registry.NewProvider(client, schema_registry.ProviderConfig{})
//	defer provider.Close()
//	codec := avro.NewCodec(provider)
func NewProvider(registry Registry, cfg ProviderConfig) *Provider {
	if cfg.SubjectCacheTTL <= 0 {
		cfg.SubjectCacheTTL = DefaultSubjectCacheTTL
	}
	if cfg.SubjectCacheSize <= 0 {
		cfg.SubjectCacheSize = DefaultSubjectCacheSize
	}

	return &Provider{
		registry: registry,
		byID:     make(map[int32]*avro.ResolvedSchema),
		subjects: ccache.New(ccache.Configure().MaxSize(cfg.SubjectCacheSize)),
		ttl:      cfg.SubjectCacheTTL,
	}
}

// WithLogger attaches a logger and returns the provider for chaining.
func (p *Provider) WithLogger(l Logger) *Provider {
	p.logger = l
	return p
}

// WithStore puts a shared SchemaStore between the in-memory cache and the
// registry. Store failures are logged and the lookup falls back to the registry.
func (p *Provider) WithStore(s SchemaStore) *Provider {
	p.store = s
	return p
}

// WithObserver attaches an observer notified of every lookup.
func (p *Provider) WithObserver(o observability.Observer) *Provider {
	p.observer = o
	return p
}

// SchemaByID implements avro.SchemaProvider.
func (p *Provider) SchemaByID(ctx context.Context, id int32) (*avro.ResolvedSchema, error) {
	start := time.Now()

	if rs, ok := p.cachedByID(id); ok {
		p.observe("schema_by_id", strconv.Itoa(int(id)), start, nil, true)
		return rs, nil
	}

	v, err, _ := p.group.Do("id:"+strconv.Itoa(int(id)), func() (interface{}, error) {
		if rs, ok := p.cachedByID(id); ok {
			return rs, nil
		}
		if rs, ok := p.storedByID(ctx, id); ok {
			return rs, nil
		}
		metadata, err := p.registry.GetSchemaByID(ctx, int(id))
		if err != nil {
			return nil, err
		}
		rs, err := p.resolve(id, metadata)
		if err != nil {
			return nil, err
		}
		p.storeSchema(ctx, id, metadata.Schema)
		return rs, nil
	})
	p.observe("schema_by_id", strconv.Itoa(int(id)), start, err, false)
	if err != nil {
		return nil, err
	}
	return v.(*avro.ResolvedSchema), nil
}

// SchemaBySubject implements avro.SchemaProvider.
func (p *Provider) SchemaBySubject(ctx context.Context, subject string) (*avro.ResolvedSchema, error) {
	start := time.Now()

	if item := p.subjects.Get(subject); item != nil && !item.Expired() {
		p.observe("schema_by_subject", subject, start, nil, true)
		return item.Value().(*avro.ResolvedSchema), nil
	}

	v, err, _ := p.group.Do("subject:"+subject, func() (interface{}, error) {
		metadata, err := p.registry.GetLatestSchema(ctx, subject)
		if err != nil {
			return nil, err
		}
		id := int32(metadata.ID)
		rs, ok := p.cachedByID(id)
		if !ok {
			if rs, err = p.resolve(id, metadata); err != nil {
				return nil, err
			}
			p.storeSchema(ctx, id, metadata.Schema)
		}
		p.subjects.Set(subject, rs, p.ttl)
		return rs, nil
	})
	p.observe("schema_by_subject", subject, start, err, false)
	if err != nil {
		return nil, err
	}
	return v.(*avro.ResolvedSchema), nil
}

// Invalidate drops the cached latest schema of subject.
func (p *Provider) Invalidate(subject string) {
	p.subjects.Delete(subject)
}

// Close stops the background worker of the subject cache.
func (p *Provider) Close() {
	p.subjects.Stop()
}

func (p *Provider) cachedByID(id int32) (*avro.ResolvedSchema, bool) {
	p.byIDMu.RLock()
	defer p.byIDMu.RUnlock()
	rs, ok := p.byID[id]
	return rs, ok
}

// storedByID resolves id from the shared store. A stored definition that no
// longer resolves is ignored so the registry copy is used instead.
func (p *Provider) storedByID(ctx context.Context, id int32) (*avro.ResolvedSchema, bool) {
	if p.store == nil {
		return nil, false
	}
	definition, found, err := p.store.GetSchema(ctx, id)
	if err != nil {
		p.warn("schema store lookup failed", err, id)
		return nil, false
	}
	if !found {
		return nil, false
	}
	rs, err := p.resolve(id, &Metadata{ID: int(id), Schema: definition})
	if err != nil {
		return nil, false
	}
	return rs, true
}

func (p *Provider) storeSchema(ctx context.Context, id int32, definition string) {
	if p.store == nil {
		return
	}
	if err := p.store.PutSchema(ctx, id, definition); err != nil {
		p.warn("schema store write failed", err, id)
	}
}

func (p *Provider) warn(msg string, err error, id int32) {
	if p.logger != nil {
		p.logger.Warn(msg, err, map[string]interface{}{"schema_id": id})
	}
}

func (p *Provider) resolve(id int32, metadata *Metadata) (*avro.ResolvedSchema, error) {
	if t := metadata.SchemaType(); t != "AVRO" {
		return nil, fmt.Errorf("schema %d has type %s: %w", id, t, ErrUnsupportedSchemaType)
	}

	rs, err := avro.Resolve(id, metadata.Schema)
	if err != nil {
		if p.logger != nil {
			p.logger.Warn("registry schema could not be resolved", err, map[string]interface{}{
				"schema_id": id,
				"subject":   metadata.Subject,
			})
		}
		return nil, err
	}

	p.byIDMu.Lock()
	defer p.byIDMu.Unlock()
	if existing, ok := p.byID[id]; ok {
		return existing, nil
	}
	p.byID[id] = rs
	return rs, nil
}

func (p *Provider) observe(operation, resource string, start time.Time, err error, hit bool) {
	duration := time.Since(start)

	if p.logger != nil && !hit {
		p.logger.Debug("schema lookup", err, map[string]interface{}{
			"operation": operation,
			"resource":  resource,
			"duration":  duration,
		})
	}

	if p.observer == nil {
		return
	}
	cache := "miss"
	if hit {
		cache = "hit"
	}
	p.observer.ObserveOperation(observability.OperationContext{
		Component: "schema_registry",
		Operation: operation,
		Resource:  resource,
		Duration:  duration,
		Error:     err,
		Metadata:  map[string]interface{}{"cache": cache},
	})
}
