package redis

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const intSchema = `{"type": "int"}`

// TestSchemaStore stores and reads schemas through a real Redis instance.
func TestSchemaStore(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	host, port, containerInstance := initializeRedis(ctx, t)
	defer func() {
		if err := containerInstance.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}()

	var client *RedisClient
	app := fx.New(
		fx.NopLogger,
		FXModule,
		fx.Supply(Config{Host: host, Port: port, KeyPrefix: "it:"}),
		fx.Populate(&client),
	)
	require.NoError(t, app.Start(ctx))
	defer app.Stop(ctx)

	t.Run("miss", func(t *testing.T) {
		definition, found, err := client.GetSchema(ctx, 404)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, definition)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, client.PutSchema(ctx, 1, intSchema))

		definition, found, err := client.GetSchema(ctx, 1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, intSchema, definition)
	})

	t.Run("first definition wins", func(t *testing.T) {
		require.NoError(t, client.PutSchema(ctx, 2, intSchema))
		require.NoError(t, client.PutSchema(ctx, 2, `{"type": "long"}`))

		definition, found, err := client.GetSchema(ctx, 2)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, intSchema, definition)
	})

	t.Run("ttl", func(t *testing.T) {
		expiring, err := NewClient(Config{Host: host, Port: port, KeyPrefix: "ttl:", SchemaTTL: time.Second})
		require.NoError(t, err)
		defer expiring.Close()

		require.NoError(t, expiring.PutSchema(ctx, 3, intSchema))
		require.Eventually(t, func() bool {
			_, found, err := expiring.GetSchema(ctx, 3)
			return err == nil && !found
		}, 5*time.Second, 200*time.Millisecond)
	})
}

func initializeRedis(ctx context.Context, t *testing.T) (string, int, testcontainers.Container) {
	hostPort, err := getFreePort()
	require.NoError(t, err)

	containerInstance, err := createRedisContainer(ctx, hostPort)
	require.NoError(t, err)

	port, err := containerInstance.MappedPort(ctx, "6379")
	require.NoError(t, err)

	host, err := containerInstance.Host(ctx)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort(host, port.Port()), 2*time.Second)
		if err != nil {
			return false
		}
		_ = conn.Close()
		return true
	}, 30*time.Second, 500*time.Millisecond, "Redis port not ready")

	return host, port.Int(), containerInstance
}

func createRedisContainer(ctx context.Context, hostPort string) (testcontainers.Container, error) {
	portBindings := nat.PortMap{
		"6379/tcp": []nat.PortBinding{{HostPort: hostPort}},
	}

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		HostConfigModifier: func(cfg *container.HostConfig) {
			cfg.PortBindings = portBindings
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6379/tcp").WithStartupTimeout(30*time.Second),
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	}

	return testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
}

func getFreePort() (string, error) {
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		return "", err
	}
	defer l.Close()
	addr := l.Addr().(*net.TCPAddr)
	return strconv.Itoa(addr.Port), nil
}
