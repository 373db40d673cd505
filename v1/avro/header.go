package avro

import "encoding/binary"

const (
	// MagicByte is the first byte of every Confluent framed record.
	MagicByte byte = 0x0

	// HeaderSize is the length of the wire header: magic byte plus a 4-byte schema id.
	HeaderSize = 5
)

// WriteHeader encodes a schema ID in the Confluent wire format
// Format: [magic_byte][schema_id]
//   - magic_byte: 0x0 (1 byte)
//   - schema_id: 4 bytes (big-endian, signed)
func WriteHeader(schemaID int32) []byte {
	buf := make([]byte, HeaderSize)
	buf[0] = MagicByte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID))
	return buf
}

// ReadHeader decodes a schema ID from the Confluent wire format.
// It returns the schema ID and the offset at which the Avro payload starts.
// A record must carry at least one payload byte after the header.
func ReadHeader(data []byte) (int32, int, error) {
	if len(data) <= HeaderSize {
		return 0, 0, newError(ErrInvalidHeader, "expected more than %d bytes, got %d", HeaderSize, len(data))
	}

	if data[0] != MagicByte {
		return 0, 0, newError(ErrInvalidHeader, "expected magic byte 0x0, got 0x%x", data[0])
	}

	schemaID := int32(binary.BigEndian.Uint32(data[1:HeaderSize]))
	return schemaID, HeaderSize, nil
}
