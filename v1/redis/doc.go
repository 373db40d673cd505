// Package redis provides a Redis backed store for registry schemas.
//
// Schema ids are immutable in a Confluent Schema Registry, so a definition
// fetched once can be shared by every kafkalens process through Redis. The
// schema_registry Provider consults the store between its in-memory cache and
// the registry:
//
//	memory -> redis -> registry
//
// # Direct Usage (Without FX)
//
//	store, err := redis.NewClient(redis.Config{Host: "localhost", Port: 6379})
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	provider := schema_registry.NewProvider(registry, schema_registry.ProviderConfig{}).
//		WithStore(store)
//
// # Keys
//
//	<key_prefix>schema:<id>   the schema text, written with SETNX
//
// # Configuration
//
//	REDIS_HOST=localhost
//	REDIS_PORT=6379
//	REDIS_KEY_PREFIX=kafkalens:
//	REDIS_SCHEMA_TTL=0         # 0 keeps schemas forever
//	REDIS_TLS_ENABLED=false
//
// Store failures never fail a lookup; the Provider logs them and falls back
// to the registry.
package redis
