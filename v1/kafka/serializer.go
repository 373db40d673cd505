package kafka

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/kafkalens/v1/avro"
)

// Serializer turns a value handed to Publish into the bytes written to the broker.
//
//go:generate mockgen -source=serializer.go -destination=mock_serializer.go -package=kafka
type Serializer interface {
	Serialize(ctx context.Context, value []byte) ([]byte, error)
}

// Deserializer turns a record value into the body delivered to consumers.
type Deserializer interface {
	// Deserialize returns the schema id (0 when the format has none) and the body.
	Deserialize(ctx context.Context, data []byte) (int32, []byte, error)
}

// RawSerializer passes values through unchanged.
type RawSerializer struct{}

// Serialize implements Serializer.
func (RawSerializer) Serialize(_ context.Context, value []byte) ([]byte, error) {
	return value, nil
}

// RawDeserializer passes values through unchanged.
type RawDeserializer struct{}

// Deserialize implements Deserializer.
func (RawDeserializer) Deserialize(_ context.Context, data []byte) (int32, []byte, error) {
	return 0, data, nil
}

// AvroSerializer encodes JSON documents with the latest schema of Subject.
type AvroSerializer struct {
	Codec   *avro.Codec
	Subject string
}

// Serialize implements Serializer.
func (s *AvroSerializer) Serialize(ctx context.Context, value []byte) ([]byte, error) {
	if s.Codec == nil {
		return nil, errors.New("avro serializer has no codec")
	}
	return s.Codec.Encode(ctx, string(value), s.Subject)
}

// AvroDeserializer decodes framed Avro records into JSON.
type AvroDeserializer struct {
	Codec *avro.Codec
}

// Deserialize implements Deserializer. The schema id is returned whenever the
// header is readable, even if the body fails to decode.
func (d *AvroDeserializer) Deserialize(ctx context.Context, data []byte) (int32, []byte, error) {
	if d.Codec == nil {
		return 0, nil, errors.New("avro deserializer has no codec")
	}
	id, text, err := d.Codec.Decode(ctx, data)
	if err != nil {
		headerID, _, headerErr := avro.ReadHeader(data)
		if headerErr == nil {
			id = headerID
		}
		return id, nil, err
	}
	return id, []byte(text), nil
}

// SetDefaultSerializers installs pass-through serializers for any side that has
// none. Avro serializers are installed by UseAvro or the FX module.
func (k *KafkaClient) SetDefaultSerializers() {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.serializer == nil {
		k.serializer = RawSerializer{}
	}
	if k.deserializer == nil {
		k.deserializer = RawDeserializer{}
	}
}

// UseAvro installs the Avro serializer and deserializer backed by codec. Values
// are encoded with the subject from Config (by default "<topic>-value").
func (k *KafkaClient) UseAvro(codec *avro.Codec) *KafkaClient {
	k.SetSerializer(&AvroSerializer{Codec: codec, Subject: k.cfg.subject()})
	k.SetDeserializer(&AvroDeserializer{Codec: codec})
	return k
}
