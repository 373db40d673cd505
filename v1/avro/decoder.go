package avro

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Decode converts a Confluent framed Avro record into JSON.
//
// Parameters:
//   - payload: The full record, wire header included
//   - schema: The schema registered under the id in the header
//
// Returns:
//   - int32: The id of schema
//   - string: The JSON document
//   - error: A *Error describing the first mismatch between payload and schema
//
// Unions are rendered as {"<branch>": value} (bare null for the null branch), decimals as
// strings, bytes and fixed as arrays of byte values.
func Decode(payload []byte, schema *ResolvedSchema) (int32, string, error) {
	if schema == nil || schema.binary == nil {
		return 0, "", newError(ErrUnsupported, "decode without a resolved schema")
	}

	if _, _, err := ReadHeader(payload); err != nil {
		return 0, "", err
	}

	native, rest, err := schema.binary.NativeFromBinary(payload[HeaderSize:])
	if err != nil {
		return 0, "", wrapError(ErrParseAvroValue, err, "schema %d", schema.ID)
	}
	if len(rest) > 0 {
		return 0, "", newError(ErrParseAvroValue, "schema %d: %d trailing bytes after value", schema.ID, len(rest))
	}

	value, err := toJSON(schema.Schema, native, "$")
	if err != nil {
		return 0, "", err
	}

	out, err := json.Marshal(value)
	if err != nil {
		return 0, "", wrapError(ErrUnsupported, err, "schema %d", schema.ID)
	}
	return schema.ID, string(out), nil
}

// orderedObject is a JSON object that keeps its keys in insertion order.
type orderedObject []objectMember

type objectMember struct {
	key   string
	value interface{}
}

func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func mismatch(path string, s Schema, v interface{}) error {
	return newError(ErrUnsupported, "%s: cannot map %T to %s", path, v, Type(s))
}

// toJSON maps a value produced by the binary layer onto its JSON form.
func toJSON(s Schema, v interface{}, path string) (interface{}, error) {
	switch t := s.(type) {
	case Null:
		if v != nil {
			return nil, mismatch(path, s, v)
		}
		return nil, nil

	case Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}

	case Int, Date, TimeMillis:
		if i, ok := v.(int32); ok {
			return i, nil
		}

	case Long, TimeMicros, TimestampMillis, TimestampMicros:
		if i, ok := v.(int64); ok {
			return i, nil
		}

	case Float:
		if f, ok := v.(float32); ok {
			if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
				return nil, newError(ErrUnsupported, "%s: %v has no JSON representation", path, f)
			}
			// shortest float32 form, so 123.123f renders as 123.123
			return json.Number(strconv.FormatFloat(float64(f), 'g', -1, 32)), nil
		}

	case Double:
		if f, ok := v.(float64); ok {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, newError(ErrUnsupported, "%s: %v has no JSON representation", path, f)
			}
			return f, nil
		}

	case Bytes, *Fixed:
		if b, ok := v.([]byte); ok {
			return byteValues(b), nil
		}

	case String, Uuid:
		if str, ok := v.(string); ok {
			return str, nil
		}

	case *Duration:
		if b, ok := v.([]byte); ok && len(b) == 12 {
			return orderedObject{
				{key: "months", value: binary.LittleEndian.Uint32(b[0:4])},
				{key: "days", value: binary.LittleEndian.Uint32(b[4:8])},
				{key: "milliseconds", value: binary.LittleEndian.Uint32(b[8:12])},
			}, nil
		}

	case *Decimal:
		if b, ok := v.([]byte); ok {
			return formatDecimal(bytesToBigInt(b), t.Scale), nil
		}

	case *Enum:
		if symbol, ok := v.(string); ok {
			return symbol, nil
		}

	case *Array:
		if items, ok := v.([]interface{}); ok {
			out := make([]interface{}, len(items))
			for i, item := range items {
				value, err := toJSON(t.Items, item, fmt.Sprintf("%s[%d]", path, i))
				if err != nil {
					return nil, err
				}
				out[i] = value
			}
			return out, nil
		}

	case *Map:
		if entries, ok := v.(map[string]interface{}); ok {
			out := make(map[string]interface{}, len(entries))
			for k, entry := range entries {
				value, err := toJSON(t.Values, entry, path+"."+k)
				if err != nil {
					return nil, err
				}
				out[k] = value
			}
			return out, nil
		}

	case *Record:
		if fields, ok := v.(map[string]interface{}); ok {
			return recordToJSON(t, fields, path)
		}

	case *Union:
		return unionToJSON(t, v, path)
	}

	return nil, mismatch(path, s, v)
}

func recordToJSON(r *Record, fields map[string]interface{}, path string) (interface{}, error) {
	for name := range fields {
		if _, ok := r.FieldIndex(name); !ok {
			return nil, newError(ErrMissingField, "%s: field %q is not part of record %s", path, name, r.Name)
		}
	}

	out := make(orderedObject, 0, len(fields))
	for _, f := range r.Fields {
		raw, ok := fields[f.Name]
		if !ok {
			continue
		}
		value, err := toJSON(f.Schema, raw, path+"."+f.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, objectMember{key: f.Name, value: value})
	}
	return out, nil
}

func unionToJSON(u *Union, v interface{}, path string) (interface{}, error) {
	if v == nil {
		return nil, nil
	}

	wrapped, ok := v.(map[string]interface{})
	if !ok || len(wrapped) != 1 {
		return nil, newError(ErrInvalidUnion, "%s: expected a single branch value, got %T", path, v)
	}

	for name, inner := range wrapped {
		index := branchIndex(u, name)
		if index < 0 || index >= len(u.Branches) {
			return nil, newError(ErrInvalidUnion, "%s: branch %q is not part of the union", path, name)
		}
		branch := u.Branches[index]
		key := branchKey(branch)
		value, err := toJSON(branch, inner, path+"."+key)
		if err != nil {
			return nil, err
		}
		return orderedObject{{key: key, value: value}}, nil
	}
	return nil, nil
}

// branchIndex returns the position of the branch the binary layer calls name, or -1.
func branchIndex(u *Union, name string) int {
	for i, b := range u.Branches {
		if wireName(b) == name {
			return i
		}
	}
	return -1
}

func byteValues(b []byte) []int {
	out := make([]int, len(b))
	for i, c := range b {
		out[i] = int(c)
	}
	return out
}
