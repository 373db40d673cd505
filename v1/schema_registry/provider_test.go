package schema_registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const userSchema = `{"type": "record", "name": "User", "fields": [
	{"name": "name", "type": "string"},
	{"name": "age", "type": "int"}
]}`

func TestProvider_SchemaByIDIsCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 5).
		Return(&Metadata{ID: 5, Schema: userSchema}, nil).
		Times(1)

	provider := NewProvider(registry, ProviderConfig{})
	defer provider.Close()

	first, err := provider.SchemaByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(5), first.ID)

	second, err := provider.SchemaByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestProvider_ConcurrentMissesShareOneLookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)

	release := make(chan struct{})
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 9).
		DoAndReturn(func(context.Context, int) (*Metadata, error) {
			<-release
			return &Metadata{ID: 9, Schema: userSchema}, nil
		}).
		Times(1)

	provider := NewProvider(registry, ProviderConfig{})
	defer provider.Close()

	var wg sync.WaitGroup
	results := make([]*avro.ResolvedSchema, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rs, err := provider.SchemaByID(context.Background(), 9)
			assert.NoError(t, err)
			results[i] = rs
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, rs := range results {
		assert.Same(t, results[0], rs)
	}
}

func TestProvider_SchemaBySubject(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetLatestSchema(gomock.Any(), "users-value").
		Return(&Metadata{ID: 11, Version: 2, Schema: userSchema, Subject: "users-value"}, nil).
		Times(2)

	provider := NewProvider(registry, ProviderConfig{SubjectCacheTTL: time.Hour})
	defer provider.Close()

	rs, err := provider.SchemaBySubject(context.Background(), "users-value")
	require.NoError(t, err)
	assert.Equal(t, int32(11), rs.ID)

	// cached by subject and by id
	cached, err := provider.SchemaBySubject(context.Background(), "users-value")
	require.NoError(t, err)
	assert.Same(t, rs, cached)

	byID, err := provider.SchemaByID(context.Background(), 11)
	require.NoError(t, err)
	assert.Same(t, rs, byID)

	// invalidation forces a new lookup that reuses the resolved schema of the same id
	provider.Invalidate("users-value")
	again, err := provider.SchemaBySubject(context.Background(), "users-value")
	require.NoError(t, err)
	assert.Same(t, rs, again)
}

func TestProvider_SubjectCacheExpires(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	gomock.InOrder(
		registry.EXPECT().
			GetLatestSchema(gomock.Any(), "users-value").
			Return(&Metadata{ID: 1, Schema: `"string"`}, nil),
		registry.EXPECT().
			GetLatestSchema(gomock.Any(), "users-value").
			Return(&Metadata{ID: 2, Schema: `"long"`}, nil),
	)

	provider := NewProvider(registry, ProviderConfig{SubjectCacheTTL: 20 * time.Millisecond})
	defer provider.Close()

	rs, err := provider.SchemaBySubject(context.Background(), "users-value")
	require.NoError(t, err)
	assert.Equal(t, int32(1), rs.ID)

	require.Eventually(t, func() bool {
		rs, err := provider.SchemaBySubject(context.Background(), "users-value")
		return err == nil && rs.ID == 2
	}, time.Second, 30*time.Millisecond)
}

func TestProvider_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	cause := &StatusError{StatusCode: 404, Code: 40403, Message: "Schema 3 not found"}

	registry.EXPECT().GetSchemaByID(gomock.Any(), 3).Return(nil, cause)
	registry.EXPECT().GetSchemaByID(gomock.Any(), 4).Return(&Metadata{ID: 4, Schema: "syntax = \"proto3\";", Type: "PROTOBUF"}, nil)
	registry.EXPECT().GetSchemaByID(gomock.Any(), 6).Return(&Metadata{ID: 6, Schema: `{"type": "record", "name": "N", "fields": [{"name": "n", "type": "N"}]}`}, nil)

	provider := NewProvider(registry, ProviderConfig{})
	defer provider.Close()

	_, err := provider.SchemaByID(context.Background(), 3)
	assert.True(t, IsNotFound(err))

	_, err = provider.SchemaByID(context.Background(), 4)
	assert.True(t, errors.Is(err, ErrUnsupportedSchemaType))

	_, err = provider.SchemaByID(context.Background(), 6)
	assert.True(t, errors.Is(err, avro.ErrUnsupportedRecursiveSchema))
}

func TestProvider_WithCodec(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetLatestSchema(gomock.Any(), "users-value").
		Return(&Metadata{ID: 100037, Schema: userSchema}, nil)

	var operations []string
	provider := NewProvider(registry, ProviderConfig{}).
		WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
			if ctx.Component == "schema_registry" {
				operations = append(operations, ctx.Operation+":"+ctx.Metadata["cache"].(string))
			}
		}))
	defer provider.Close()

	codec := avro.NewCodec(provider)

	record, err := codec.Encode(context.Background(), `{"name": "Jane", "age": 31}`, "users-value")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x86, 0xC5}, record[:avro.HeaderSize])

	id, text, err := codec.Decode(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, int32(100037), id)
	assert.JSONEq(t, `{"name": "Jane", "age": 31}`, text)

	assert.Equal(t, []string{"schema_by_subject:miss", "schema_by_id:hit"}, operations)
}

type memoryStore struct {
	mu      sync.Mutex
	schemas map[int32]string
	getErr  error
	puts    int
}

func (s *memoryStore) GetSchema(_ context.Context, id int32) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	definition, ok := s.schemas[id]
	return definition, ok, nil
}

func (s *memoryStore) PutSchema(_ context.Context, id int32, definition string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.puts++
	s.schemas[id] = definition
	return nil
}

func TestProvider_StoreHitSkipsRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)

	store := &memoryStore{schemas: map[int32]string{5: userSchema}}
	provider := NewProvider(registry, ProviderConfig{}).WithStore(store)
	defer provider.Close()

	rs, err := provider.SchemaByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(5), rs.ID)
	assert.Equal(t, 0, store.puts)
}

func TestProvider_RegistryResultIsStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 8).
		Return(&Metadata{ID: 8, Schema: userSchema}, nil)
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 4).
		Return(&Metadata{ID: 4, Schema: "syntax = \"proto3\";", Type: "PROTOBUF"}, nil)

	store := &memoryStore{schemas: map[int32]string{}}
	provider := NewProvider(registry, ProviderConfig{}).WithStore(store)
	defer provider.Close()

	_, err := provider.SchemaByID(context.Background(), 8)
	require.NoError(t, err)
	assert.Equal(t, userSchema, store.schemas[8])

	_, err = provider.SchemaByID(context.Background(), 4)
	require.ErrorIs(t, err, ErrUnsupportedSchemaType)
	assert.NotContains(t, store.schemas, int32(4))
	assert.Equal(t, 1, store.puts)
}

func TestProvider_StoreFailureFallsBackToRegistry(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 2).
		Return(&Metadata{ID: 2, Schema: `"long"`}, nil)

	store := &memoryStore{schemas: map[int32]string{}, getErr: errors.New("connection refused")}
	provider := NewProvider(registry, ProviderConfig{}).WithStore(store)
	defer provider.Close()

	rs, err := provider.SchemaByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int32(2), rs.ID)
}

func TestProvider_UnresolvableStoredSchemaIsIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	registry := NewMockRegistry(ctrl)
	registry.EXPECT().
		GetSchemaByID(gomock.Any(), 3).
		Return(&Metadata{ID: 3, Schema: `"int"`}, nil)

	store := &memoryStore{schemas: map[int32]string{3: `{"type": `}}
	provider := NewProvider(registry, ProviderConfig{}).WithStore(store)
	defer provider.Close()

	rs, err := provider.SchemaByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, int32(3), rs.ID)
}
