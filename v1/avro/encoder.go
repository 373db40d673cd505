package avro

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/linkedin/goavro/v2"
)

// Encode converts a JSON document into a Confluent framed Avro record.
//
// Parameters:
//   - jsonText: The JSON document, in the shape Decode produces
//   - schema: The schema to encode against; its id goes into the wire header
//
// Returns:
//   - []byte: The record, wire header included
//   - error: A *Error describing the first mismatch between document and schema
//
// Values are never coerced: a missing record field, an unknown union branch or a
// decimal with more fractional digits than the schema scale all fail.
func Encode(jsonText string, schema *ResolvedSchema) ([]byte, error) {
	if schema == nil || schema.binary == nil {
		return nil, newError(ErrUnsupported, "encode without a resolved schema")
	}

	value, err := parseJSON(jsonText)
	if err != nil {
		return nil, err
	}

	native, err := fromJSON(schema.Schema, value, "$")
	if err != nil {
		return nil, err
	}

	out, err := schema.binary.BinaryFromNative(WriteHeader(schema.ID), native)
	if err != nil {
		return nil, wrapError(ErrParseAvroValue, err, "schema %d", schema.ID)
	}
	return out, nil
}

func parseJSON(text string) (interface{}, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, wrapError(ErrParseJSONValue, err, "")
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, newError(ErrParseJSONValue, "unexpected data after the JSON document")
	}
	return value, nil
}

// fromJSON maps a JSON value onto the value shapes the binary layer accepts.
func fromJSON(s Schema, v interface{}, path string) (interface{}, error) {
	switch t := s.(type) {
	case Null:
		if v == nil {
			return nil, nil
		}

	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case Int, Date, TimeMillis:
		i, err := toInteger(v, 32, path)
		if err != nil {
			return nil, err
		}
		return int32(i), nil

	case Long, TimeMicros, TimestampMillis, TimestampMicros:
		return toInteger(v, 64, path)

	case Float:
		f, err := toFloat(v, 32, path)
		if err != nil {
			return nil, err
		}
		return float32(f), nil

	case Double:
		return toFloat(v, 64, path)

	case Bytes:
		return toBytes(v, path)

	case *Fixed:
		b, err := toBytes(v, path)
		if err != nil {
			return nil, err
		}
		if len(b) != t.Size {
			return nil, newError(ErrUnsupported, "%s: fixed %s needs %d bytes, got %d", path, t.Name, t.Size, len(b))
		}
		return b, nil

	case String:
		if str, ok := v.(string); ok {
			return str, nil
		}

	case Uuid:
		str, ok := v.(string)
		if !ok {
			return nil, newError(ErrInvalidUUID, "%s: expected a string, got %T", path, v)
		}
		id, err := uuid.Parse(str)
		if err != nil {
			return nil, wrapError(ErrInvalidUUID, err, "%s", path)
		}
		return id.String(), nil

	case *Duration:
		return toDuration(v, path)

	case *Decimal:
		return toDecimal(t, v, path)

	case *Enum:
		symbol, ok := v.(string)
		if !ok {
			return nil, newError(ErrInvalidEnum, "%s: expected a symbol of %s, got %T", path, t.Name, v)
		}
		if t.SymbolIndex(symbol) < 0 {
			return nil, newError(ErrInvalidEnum, "%s: %q is not a symbol of %s", path, symbol, t.Name)
		}
		return symbol, nil

	case *Array:
		items, ok := v.([]interface{})
		if !ok {
			break
		}
		out := make([]interface{}, len(items))
		for i, item := range items {
			native, err := fromJSON(t.Items, item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out[i] = native
		}
		return out, nil

	case *Map:
		entries, ok := v.(map[string]interface{})
		if !ok {
			break
		}
		out := make(map[string]interface{}, len(entries))
		for k, entry := range entries {
			native, err := fromJSON(t.Values, entry, path+"."+k)
			if err != nil {
				return nil, err
			}
			out[k] = native
		}
		return out, nil

	case *Record:
		obj, ok := v.(map[string]interface{})
		if !ok {
			break
		}
		out := make(map[string]interface{}, len(t.Fields))
		for _, f := range t.Fields {
			raw, ok := obj[f.Name]
			if !ok {
				return nil, newError(ErrMissingField, "%s: field %q of record %s", path, f.Name, t.Name)
			}
			native, err := fromJSON(f.Schema, raw, path+"."+f.Name)
			if err != nil {
				return nil, err
			}
			out[f.Name] = native
		}
		return out, nil

	case *Union:
		return unionFromJSON(t, v, path)
	}

	return nil, newError(ErrUnsupported, "%s: cannot map JSON %s to %s", path, jsonKind(v), Type(s))
}

func unionFromJSON(u *Union, v interface{}, path string) (interface{}, error) {
	if v == nil {
		for _, b := range u.Branches {
			if _, ok := b.(Null); ok {
				return nil, nil
			}
		}
		return nil, newError(ErrInvalidUnion, "%s: null given but the union has no null branch", path)
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, newError(ErrInvalidUnion, "%s: expected {\"<branch>\": value}, got JSON %s", path, jsonKind(v))
	}
	if len(obj) != 1 {
		return nil, newError(ErrInvalidUnion, "%s: expected exactly one branch key, got %d", path, len(obj))
	}

	for key, inner := range obj {
		for _, b := range u.Branches {
			if branchKey(b) != key {
				continue
			}
			native, err := fromJSON(b, inner, path+"."+key)
			if err != nil {
				return nil, err
			}
			return goavro.Union(wireName(b), native), nil
		}
		return nil, newError(ErrInvalidUnion, "%s: no branch named %q", path, key)
	}
	return nil, nil
}

func toInteger(v interface{}, bits int, path string) (int64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, newError(ErrInvalidNumber, "%s: expected an integer, got JSON %s", path, jsonKind(v))
	}

	i, err := strconv.ParseInt(string(n), 10, 64)
	if err != nil {
		// Not a plain integer literal: accept exact integral values such as 1e3 or 12.0.
		f, ferr := strconv.ParseFloat(string(n), 64)
		if ferr != nil || math.Abs(f) > math.MaxInt64 {
			return 0, newError(ErrInvalidNumber, "%s: %s is out of range for int%d", path, n, bits)
		}
		r, ok := new(big.Rat).SetString(string(n))
		if !ok || !r.IsInt() || !r.Num().IsInt64() {
			return 0, newError(ErrInvalidNumber, "%s: %s is not an int%d", path, n, bits)
		}
		i = r.Num().Int64()
	}

	if bits == 32 && (i < math.MinInt32 || i > math.MaxInt32) {
		return 0, newError(ErrInvalidNumber, "%s: %s is out of range for int32", path, n)
	}
	return i, nil
}

func toFloat(v interface{}, bits int, path string) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, newError(ErrInvalidNumber, "%s: expected a number, got JSON %s", path, jsonKind(v))
	}
	f, err := strconv.ParseFloat(string(n), bits)
	if err != nil {
		return 0, wrapError(ErrInvalidNumber, err, "%s", path)
	}
	return f, nil
}

func toBytes(v interface{}, path string) ([]byte, error) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, newError(ErrUnsupported, "%s: expected an array of byte values, got JSON %s", path, jsonKind(v))
	}
	out := make([]byte, len(items))
	for i, item := range items {
		b, err := toInteger(item, 64, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if b < 0 || b > math.MaxUint8 {
			return nil, newError(ErrInvalidNumber, "%s[%d]: %d is not a byte value", path, i, b)
		}
		out[i] = byte(b)
	}
	return out, nil
}

func toDuration(v interface{}, path string) ([]byte, error) {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, newError(ErrUnsupported, "%s: expected a duration object, got JSON %s", path, jsonKind(v))
	}
	out := make([]byte, 12)
	for i, key := range []string{"months", "days", "milliseconds"} {
		raw, ok := obj[key]
		if !ok {
			return nil, newError(ErrMissingField, "%s: duration field %q", path, key)
		}
		n, err := toInteger(raw, 64, path+"."+key)
		if err != nil {
			return nil, err
		}
		if n < 0 || n > math.MaxUint32 {
			return nil, newError(ErrInvalidNumber, "%s.%s: %d is out of range for an unsigned int", path, key, n)
		}
		binary.LittleEndian.PutUint32(out[i*4:], uint32(n))
	}
	return out, nil
}

func toDecimal(d *Decimal, v interface{}, path string) ([]byte, error) {
	var text string
	switch n := v.(type) {
	case json.Number:
		text = string(n)
	case string:
		text = n
	default:
		return nil, newError(ErrInvalidNumber, "%s: expected a decimal, got JSON %s", path, jsonKind(v))
	}

	unscaled, scale, err := parseDecimal(text)
	if err != nil {
		return nil, wrapError(ErrInvalidNumber, err, "%s", path)
	}
	if unscaled.Sign() == 0 {
		scale = d.Scale
	}
	if scale > d.Scale {
		return nil, newError(ErrInvalidNumber, "%s: %s has scale %d, schema allows %d", path, text, scale, d.Scale)
	}
	// Checked before rescaling so that a huge exponent never gets expanded.
	if d.Scale-scale > d.Precision {
		return nil, newError(ErrInvalidNumber, "%s: %s exceeds precision %d", path, text, d.Precision)
	}

	scaled, _ := rescale(unscaled, scale, d.Scale)
	if !fitsPrecision(scaled, d.Precision) {
		return nil, newError(ErrInvalidNumber, "%s: %s exceeds precision %d", path, text, d.Precision)
	}

	b := bigIntToBytes(scaled)
	if d.FixedSize == 0 {
		return b, nil
	}
	fixed, ok := signExtend(b, d.FixedSize)
	if !ok {
		return nil, newError(ErrInvalidNumber, "%s: %s does not fit in %d bytes", path, text, d.FixedSize)
	}
	return fixed, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	case string:
		return "string"
	case []interface{}:
		return "array"
	case map[string]interface{}:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
