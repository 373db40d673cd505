package avro

import (
	"github.com/Aleph-Alpha/kafkalens/v1/observability"
	"go.uber.org/fx"
)

// FXModule is an fx.Module that provides the Avro Codec.
// It requires a SchemaProvider in the container (schema_registry.FXModule provides one)
// and picks up an optional Logger and observability.Observer.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    schema_registry.FXModule,
//	    avro.FXModule,
//	    fx.Invoke(func(codec *avro.Codec) {
//	        // decode and encode records
//	    }),
//	)
var FXModule = fx.Module("avro",
	fx.Provide(
		NewCodecWithDI,
	),
)

// CodecParams groups the dependencies needed to create a Codec
type CodecParams struct {
	fx.In

	Provider SchemaProvider
	Logger   Logger                 `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewCodecWithDI creates a Codec using dependency injection.
func NewCodecWithDI(params CodecParams) *Codec {
	codec := NewCodec(params.Provider)
	if params.Logger != nil {
		codec.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		codec.WithObserver(params.Observer)
	}
	return codec
}
