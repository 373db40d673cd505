// Package avro converts Confluent framed Avro records to JSON and JSON back to records.
//
// A framed record is laid out as:
//
//	[magic_byte (1 byte, 0x0)] [schema_id (4 bytes, big-endian)] [avro binary payload]
//
// The binary payload is read and written by github.com/linkedin/goavro/v2. This package
// adds what goavro does not do: it resolves the schema into a reference-free tree
// (Resolve) and uses that tree to map values to and from a stable, human editable JSON
// form that survives a round trip unchanged.
//
// Core Features:
//   - Schema resolution with namespace inheritance and named type references
//   - Detection of recursive schemas (ErrUnsupportedRecursiveSchema)
//   - Exact decimals on math/big, rendered as JSON strings
//   - Logical types: decimal, uuid, date, time-*, timestamp-*, duration
//   - Typed errors usable with errors.Is (ErrMissingField, ErrInvalidUnion, ...)
//
// JSON Mapping:
//
//	record          -> object, fields in schema order
//	enum            -> symbol string
//	union           -> null, or {"<branch>": value}; <branch> is the unqualified name of a
//	                   named type or the type name ("string", "array", "timestamp-millis")
//	bytes, fixed    -> array of byte values, e.g. [1,2,170]
//	decimal         -> string, e.g. "12.30"
//	uuid            -> string
//	date, time-*    -> integer
//	duration        -> {"months": m, "days": d, "milliseconds": ms}
//
// Basic Usage:
//
//	import "github.com/Aleph-Alpha/kafkalens/v1/avro"
//
//	rs, err := avro.Resolve(100037, schemaText)
//	if err != nil {
//	    return err
//	}
//
//	record, err := avro.Encode(`{"name":"Jane","age":31}`, rs)
//	if err != nil {
//	    return err
//	}
//
//	id, text, err := avro.Decode(record, rs)
//
// With a Schema Registry:
//
//	provider := schema_registry.NewProvider(registry, schema_registry.ProviderConfig{})
//	codec := avro.NewCodec(provider)
//
//	id, text, err := codec.Decode(ctx, msg.Value)
//	payload, err := codec.Encode(ctx, text, "orders-value")
//
// Thread Safety:
//
// Resolve, Decode and Encode are pure functions of their arguments. ResolvedSchema and
// Codec are immutable after construction and safe for concurrent use.
package avro
