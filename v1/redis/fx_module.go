package redis

import (
	"context"

	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides the Redis schema store.
//
// The module:
// 1. Provides the *RedisClient built from Config
// 2. Invokes the lifecycle registration, which pings Redis on start and closes the client on stop
//
// Usage:
//
//	app := fx.New(
//	    redis.FXModule,
//	    schema_registry.FXModule,
//	    fx.Provide(func(c *redis.RedisClient) schema_registry.SchemaStore { return c }),
//	    fx.Supply(redis.Config{Host: "localhost", Port: 6379}),
//	)
var FXModule = fx.Module("redis",
	fx.Provide(
		NewClientWithDI,
	),
	fx.Invoke(RegisterRedisLifecycle),
)

// RedisParams groups the dependencies needed to create a Redis client
type RedisParams struct {
	fx.In

	Config   Config
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a new Redis client using dependency injection.
// The optional logger and observer are attached before the client is returned.
func NewClientWithDI(params RedisParams) (*RedisClient, error) {
	if params.Logger != nil {
		params.Config.Logger = params.Logger
	}

	client, err := NewClient(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Observer != nil {
		client.WithObserver(params.Observer)
	}
	return client, nil
}

// RedisLifecycleParams groups the dependencies needed for Redis lifecycle management
type RedisLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *RedisClient
}

// RegisterRedisLifecycle registers the Redis client with the fx lifecycle system.
//
// The function:
//  1. On application start: Pings Redis to ensure the connection is healthy
//  2. On application stop: Closes the client
func RegisterRedisLifecycle(params RedisLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := params.Client.Ping(ctx); err != nil {
				if params.Client.logger != nil {
					params.Client.logger.Warn("Failed to ping Redis on startup", err)
				}
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return params.Client.Close()
		},
	})
}
