package avro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const primitivesSchema = `{
	"type": "record", "name": "Primitives", "namespace": "com.example",
	"fields": [
		{"name": "null_field", "type": "null"},
		{"name": "boolean_field", "type": "boolean"},
		{"name": "int_field", "type": "int"},
		{"name": "long_field", "type": "long"},
		{"name": "float_field", "type": "float"},
		{"name": "double_field", "type": "double"},
		{"name": "bytes_field", "type": "bytes"},
		{"name": "string_field", "type": "string"}
	]
}`

func decimalSchema(scale int) string {
	if scale == 1 {
		return `{"type": "record", "name": "Amount", "fields": [
			{"name": "value", "type": {"type": "bytes", "logicalType": "decimal", "precision": 9, "scale": 1}}
		]}`
	}
	return `{"type": "record", "name": "Amount", "fields": [
		{"name": "value", "type": {"type": "bytes", "logicalType": "decimal", "precision": 9, "scale": 2}}
	]}`
}

func TestEncode_Primitives(t *testing.T) {
	rs := MustResolve(100037, primitivesSchema)
	input := `{"null_field":null,"boolean_field":true,"int_field":12,"long_field":12345667,` +
		`"float_field":123.123,"double_field":12.12,"bytes_field":[1,2,170],"string_field":"YO!! test"}`

	record, err := Encode(input, rs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x01, 0x86, 0xC5}, record[:HeaderSize])

	id, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.Equal(t, int32(100037), id)
	assert.JSONEq(t, input, output)

	again, err := Encode(output, rs)
	require.NoError(t, err)
	assert.Equal(t, record, again)
}

func TestEncode_Decimal(t *testing.T) {
	rs := MustResolve(7, decimalSchema(2))

	record, err := Encode(`{"value": 12.3}`, rs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x04, 0x04, 0xCE}, record[HeaderSize:])

	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": "12.30"}`, output)

	fromString, err := Encode(`{"value": "12.3"}`, rs)
	require.NoError(t, err)
	assert.Equal(t, record, fromString)
}

func TestEncode_DecimalScaleOne(t *testing.T) {
	rs := MustResolve(7, decimalSchema(1))

	record, err := Encode(`{"value": 12.3}`, rs)
	require.NoError(t, err)

	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": "12.3"}`, output)

	_, err = Encode(`{"value": 12.334}`, rs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumber))
}

func TestEncode_DecimalLimits(t *testing.T) {
	rs := MustResolve(7, decimalSchema(2))

	for _, input := range []string{
		`{"value": 12345678.9}`,
		`{"value": 1e1000000000}`,
		`{"value": "twelve"}`,
		`{"value": true}`,
	} {
		_, err := Encode(input, rs)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrInvalidNumber), input)
	}

	record, err := Encode(`{"value": "-0.00e5"}`, rs)
	require.NoError(t, err)
	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value": "0.00"}`, output)
}

func TestEncode_Union(t *testing.T) {
	rs := MustResolve(3, `{"type": "record", "name": "Note", "fields": [
		{"name": "text", "type": ["null", "string"]}
	]}`)

	record, err := Encode(`{"text": null}`, rs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, record[HeaderSize:])

	record, err = Encode(`{"text": {"string": "hi"}}`, rs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02, 0x04, 'h', 'i'}, record[HeaderSize:])

	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"text": {"string": "hi"}}`, output)

	for _, input := range []string{
		`{"text": "hi"}`,
		`{"text": {"int": 1}}`,
		`{"text": {"string": "a", "null": null}}`,
	} {
		_, err := Encode(input, rs)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrInvalidUnion), input)
	}
}

func TestEncode_UnionWithoutNull(t *testing.T) {
	rs := MustResolve(3, `{"type": "record", "name": "Value", "fields": [
		{"name": "v", "type": ["int", "string"]}
	]}`)

	_, err := Encode(`{"v": null}`, rs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUnion))
	assert.Equal(t, "invalid_union", Kind(err))
}

func TestEncode_UnionOfNamedTypes(t *testing.T) {
	rs := MustResolve(3, `{"type": "record", "name": "Event", "namespace": "com.example", "fields": [
		{"name": "payload", "type": [
			"null",
			{"type": "record", "name": "Click", "fields": [{"name": "x", "type": "int"}]},
			{"type": "enum", "name": "Signal", "namespace": "com.other", "symbols": ["ON", "OFF"]},
			{"type": "long", "logicalType": "timestamp-millis"}
		]}
	]}`)

	for _, input := range []string{
		`{"payload": {"Click": {"x": 4}}}`,
		`{"payload": {"Signal": "OFF"}}`,
		`{"payload": {"timestamp-millis": 1700000000000}}`,
	} {
		record, err := Encode(input, rs)
		require.NoError(t, err, input)

		_, output, err := Decode(record, rs)
		require.NoError(t, err, input)
		assert.JSONEq(t, input, output)
	}
}

func TestEncode_UnionOfLogicalTypesOverFixed(t *testing.T) {
	rs := MustResolve(4, `{"type": "record", "name": "Reading", "fields": [
		{"name": "v", "type": [
			{"type": "bytes", "logicalType": "decimal", "precision": 9, "scale": 1},
			{"type": "fixed", "name": "Big", "size": 8, "logicalType": "decimal", "precision": 12, "scale": 3}
		]},
		{"name": "d", "type": [
			{"type": "fixed", "name": "Short", "size": 12, "logicalType": "duration"},
			{"type": "fixed", "name": "Long", "namespace": "com.time", "size": 12, "logicalType": "duration"}
		]}
	]}`)

	for _, input := range []string{
		`{"v": {"decimal": "1.5"}, "d": {"Short": {"months": 1, "days": 2, "milliseconds": 3}}}`,
		`{"v": {"Big": "1.234"}, "d": {"Long": {"months": 0, "days": 7, "milliseconds": 0}}}`,
	} {
		record, err := Encode(input, rs)
		require.NoError(t, err, input)

		_, output, err := Decode(record, rs)
		require.NoError(t, err, input)
		assert.JSONEq(t, input, output)
	}
}

func TestEncode_MissingField(t *testing.T) {
	rs := MustResolve(1, `{"type": "record", "name": "User", "fields": [
		{"name": "name", "type": "string"},
		{"name": "age", "type": "int"}
	]}`)

	_, err := Encode(`{"name": "Jane"}`, rs)
	require.Error(t, err)
	assert.True(t, IsMissingField(err))
	assert.Contains(t, err.Error(), `"age"`)

	// keys unknown to the schema are ignored
	record, err := Encode(`{"name": "Jane", "age": 31, "email": "jane@example.com"}`, rs)
	require.NoError(t, err)
	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Jane", "age": 31}`, output)
}

func TestEncode_Enum(t *testing.T) {
	rs := MustResolve(1, `{"type": "enum", "name": "Color", "symbols": ["RED", "GREEN"]}`)

	record, err := Encode(`"GREEN"`, rs)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x02}, record[HeaderSize:])

	_, err = Encode(`"BLUE"`, rs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidEnum))
}

func TestEncode_UUID(t *testing.T) {
	rs := MustResolve(1, `{"type": "string", "logicalType": "uuid"}`)

	record, err := Encode(`"6F1A3C1E-8D4B-4C3A-9E0F-2B7C5D9A1E42"`, rs)
	require.NoError(t, err)
	_, output, err := Decode(record, rs)
	require.NoError(t, err)
	assert.Equal(t, `"6f1a3c1e-8d4b-4c3a-9e0f-2b7c5d9a1e42"`, output)

	_, err = Encode(`"not-a-uuid"`, rs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidUUID))
}

func TestEncode_Numbers(t *testing.T) {
	intSchema := MustResolve(1, `"int"`)
	longSchema := MustResolve(2, `"long"`)

	record, err := Encode(`1e3`, intSchema)
	require.NoError(t, err)
	_, output, err := Decode(record, intSchema)
	require.NoError(t, err)
	assert.Equal(t, "1000", output)

	_, err = Encode(`9223372036854775807`, longSchema)
	require.NoError(t, err)

	for _, tt := range []struct {
		input  string
		schema *ResolvedSchema
	}{
		{`2147483648`, intSchema},
		{`12.5`, intSchema},
		{`"12"`, intSchema},
		{`9223372036854775808`, longSchema},
	} {
		_, err := Encode(tt.input, tt.schema)
		require.Error(t, err, tt.input)
		assert.True(t, errors.Is(err, ErrInvalidNumber), tt.input)
	}
}

func TestEncode_BytesAndFixed(t *testing.T) {
	bytesSchema := MustResolve(1, `"bytes"`)
	fixedSchema := MustResolve(2, `{"type": "fixed", "name": "Pair", "size": 2}`)

	record, err := Encode(`[0, 255]`, fixedSchema)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0xff}, record[HeaderSize:])

	_, err = Encode(`[1, 2, 3]`, fixedSchema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))

	_, err = Encode(`[256]`, bytesSchema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidNumber))

	_, err = Encode(`"AQI="`, bytesSchema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupported))
}

func TestEncode_MalformedJSON(t *testing.T) {
	rs := MustResolve(1, `"string"`)

	for _, input := range []string{`{"a":`, `"a" "b"`, ``} {
		_, err := Encode(input, rs)
		require.Error(t, err, input)
		assert.True(t, errors.Is(err, ErrParseJSONValue), input)
	}
}

func TestEncode_WithoutSchema(t *testing.T) {
	_, err := Encode(`{}`, nil)
	assert.True(t, errors.Is(err, ErrUnsupported))
}
