package redis

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Defaults(t *testing.T) {
	client, err := NewClient(Config{})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, DefaultHost, client.cfg.Host)
	assert.Equal(t, DefaultPort, client.cfg.Port)
	assert.Equal(t, DefaultKeyPrefix, client.cfg.KeyPrefix)
	assert.Equal(t, DefaultMaxRetries, client.cfg.MaxRetries)
	assert.Equal(t, "kafkalens:schema:42", client.schemaKey(42))
}

func TestNewClient_TLSErrors(t *testing.T) {
	_, err := NewClient(Config{TLS: TLSConfig{
		Enabled:    true,
		CACertPath: filepath.Join(t.TempDir(), "missing.pem"),
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create TLS config")
}

func TestClose_Idempotent(t *testing.T) {
	client, err := NewClient(Config{KeyPrefix: "test:"})
	require.NoError(t, err)

	require.NoError(t, client.Close())
	require.NoError(t, client.Close())

	_, _, err = client.GetSchema(context.Background(), 1)
	assert.True(t, IsClosedError(err))
	assert.ErrorIs(t, client.PutSchema(context.Background(), 1, `"int"`), ErrClosed)
	assert.ErrorIs(t, client.Ping(context.Background()), ErrClosed)
}

func TestGetSchema_ReportsConnectionErrors(t *testing.T) {
	var observed []observability.OperationContext
	client, err := NewClient(Config{
		Host:        "127.0.0.1",
		Port:        1,
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	require.NoError(t, err)
	defer client.Close()
	client.WithObserver(observability.ObserverFunc(func(ctx observability.OperationContext) {
		observed = append(observed, ctx)
	}))

	_, found, err := client.GetSchema(context.Background(), 3)
	require.Error(t, err)
	assert.False(t, found)
	assert.False(t, IsNilError(err))

	require.Len(t, observed, 1)
	assert.Equal(t, "redis", observed[0].Component)
	assert.Equal(t, "get_schema", observed[0].Operation)
	assert.Equal(t, "3", observed[0].Resource)
	assert.Error(t, observed[0].Error)
}
