// Package schema_registry provides integration with Confluent Schema Registry.
//
// It contains an HTTP client for the registry and a Provider that turns registry
// schemas into resolved Avro schemas for the codec in package avro.
//
// Core Features:
//   - Context-aware HTTP client with basic auth
//   - Schema retrieval by id and by subject, subject listing
//   - Schema registration and compatibility checking
//   - Typed registry errors (StatusError, IsNotFound)
//   - Provider with a permanent id cache, a TTL bound subject cache and
//     de-duplicated concurrent lookups
//   - Optional SchemaStore shared between processes (see package redis)
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/kafkalens/v1/schema_registry"
//
//	registry, err := schema_registry.NewClient(schema_registry.Config{
//	    URL:      "http://localhost:8081",
//	    Username: "user",     // Optional
//	    Password: "password", // Optional
//	    Timeout:  10 * time.Second,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	metadata, err := registry.GetLatestSchema(ctx, "users-value")
//	if schema_registry.IsNotFound(err) {
//	    log.Println("subject does not exist")
//	}
//
// Decoding records:
//
//	provider := schema_registry.NewProvider(registry, schema_registry.ProviderConfig{
//	    SubjectCacheTTL: time.Minute,
//	})
//	defer provider.Close()
//
//	codec := avro.NewCodec(provider)
//	id, text, err := codec.Decode(ctx, msg.Value)
//
// Using with FX:
//
//	app := fx.New(
//	    schema_registry.FXModule,
//	    avro.FXModule,
//	    fx.Provide(
//	        func() schema_registry.Config {
//	            return schema_registry.Config{
//	                URL: os.Getenv("SCHEMA_REGISTRY_URL"),
//	            }
//	        },
//	    ),
//	)
//
// Shared store:
//
//	store, _ := redis.NewClient(redis.Config{Host: "localhost"})
//	provider := schema_registry.NewProvider(registry, schema_registry.ProviderConfig{}).
//	    WithStore(store)
//
// Lookups by id try memory, then the store, then the registry. Store errors are
// logged and never fail a lookup.
//
// Only Avro schemas are supported by the Provider; PROTOBUF and JSON schemas fail
// with ErrUnsupportedSchemaType.
//
// Thread Safety:
//
// Client and Provider are safe for concurrent use.
package schema_registry
