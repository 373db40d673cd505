package avro

import (
	"context"
	"fmt"
	"sync"
)

// SchemaProvider supplies resolved schemas to the Codec.
//
// Implementations are expected to cache: the Codec asks once per record.
//
//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=avro
type SchemaProvider interface {
	// SchemaByID returns the schema registered under id.
	SchemaByID(ctx context.Context, id int32) (*ResolvedSchema, error)

	// SchemaBySubject returns the latest schema registered for subject.
	SchemaBySubject(ctx context.Context, subject string) (*ResolvedSchema, error)
}

// StaticProvider is an in-memory SchemaProvider for schemas that do not come from a
// registry, such as local .avsc files.
type StaticProvider struct {
	mu       sync.RWMutex
	byID     map[int32]*ResolvedSchema
	subjects map[string]int32
}

// NewStaticProvider creates an empty StaticProvider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		byID:     make(map[int32]*ResolvedSchema),
		subjects: make(map[string]int32),
	}
}

// Register resolves definition under id and makes it the latest schema of the
// given subjects.
func (p *StaticProvider) Register(id int32, definition string, subjects ...string) (*ResolvedSchema, error) {
	rs, err := Resolve(id, definition)
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.byID[id] = rs
	for _, s := range subjects {
		p.subjects[s] = id
	}
	return rs, nil
}

// SchemaByID implements SchemaProvider.
func (p *StaticProvider) SchemaByID(_ context.Context, id int32) (*ResolvedSchema, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	rs, ok := p.byID[id]
	if !ok {
		return nil, fmt.Errorf("schema %d is not registered", id)
	}
	return rs, nil
}

// SchemaBySubject implements SchemaProvider.
func (p *StaticProvider) SchemaBySubject(_ context.Context, subject string) (*ResolvedSchema, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	id, ok := p.subjects[subject]
	if !ok {
		return nil, fmt.Errorf("subject %q is not registered", subject)
	}
	return p.byID[id], nil
}
