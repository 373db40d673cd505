package schema_registry

import (
	"context"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides and configures the Schema Registry client
// and the caching schema Provider used by the Avro codec.
//
// The module:
// 1. Provides the Registry built from Config
// 2. Provides the *Provider and exposes it as avro.SchemaProvider
// 3. Invokes the lifecycle registration, which stops the provider caches on shutdown
//
// Usage:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    avro.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL:      "http://localhost:8081",
//	                Username: "user",
//	                Password: "pass",
//	            }
//	        },
//	    ),
//	)
var FXModule = fx.Module("schema_registry",
	fx.Provide(
		NewClientWithDI,
		NewProviderWithDI,
		func(p *Provider) avro.SchemaProvider { return p },
	),
	fx.Invoke(RegisterSchemaRegistryLifecycle),
)

// SchemaRegistryParams groups the dependencies needed to create a Schema Registry client
type SchemaRegistryParams struct {
	fx.In

	Config Config
}

// NewClientWithDI creates a new Schema Registry client using dependency injection.
//
// Parameters:
//   - params: A SchemaRegistryParams struct that contains the Config instance
//     required to initialize the Schema Registry client.
//
// Returns:
//   - Registry: A fully initialized Schema Registry client ready for use.
//   - error: When Config.URL is empty
func NewClientWithDI(params SchemaRegistryParams) (Registry, error) {
	return NewClient(params.Config)
}

// ProviderParams groups the dependencies needed to create a Provider
type ProviderParams struct {
	fx.In

	Config   Config
	Registry Registry
	Store    SchemaStore            `optional:"true"`
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewProviderWithDI creates the caching Provider using dependency injection.
// The subject cache TTL comes from Config.SubjectCacheTTL. A SchemaStore in the
// container, such as the redis module's client, is used as shared cache.
func NewProviderWithDI(params ProviderParams) *Provider {
	provider := NewProvider(params.Registry, ProviderConfig{SubjectCacheTTL: params.Config.SubjectCacheTTL})
	if params.Store != nil {
		provider.WithStore(params.Store)
	}
	if params.Logger != nil {
		provider.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		provider.WithObserver(params.Observer)
	}
	return provider
}

// SchemaRegistryLifecycleParams groups the dependencies needed for Schema Registry lifecycle management
type SchemaRegistryLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Provider  *Provider
	Logger    Logger `optional:"true"`
}

// RegisterSchemaRegistryLifecycle registers the Schema Registry components with the fx lifecycle system.
//
// The function:
//  1. On application start: Logs that the registry client is ready
//  2. On application stop: Stops the subject cache of the Provider
func RegisterSchemaRegistryLifecycle(params SchemaRegistryLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("Schema Registry client initialized", nil, map[string]interface{}{
					"url": params.Config.URL,
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			params.Provider.Close()
			if params.Logger != nil {
				params.Logger.Info("Schema Registry client shutdown", nil)
			}
			return nil
		},
	})
}
