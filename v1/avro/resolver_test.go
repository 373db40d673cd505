package avro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_NamespaceInheritance(t *testing.T) {
	rs, err := Resolve(1, `{
		"type": "record", "name": "Order", "namespace": "com.shop",
		"fields": [
			{"name": "status", "type": {"type": "enum", "name": "Status", "symbols": ["NEW", "PAID"]}},
			{"name": "customer", "type": {
				"type": "record", "name": "Customer", "namespace": "com.crm",
				"fields": [{"name": "tier", "type": {"type": "enum", "name": "Tier", "symbols": ["GOLD"]}}]
			}},
			{"name": "previous", "type": ["null", "Status"]},
			{"name": "tier", "type": "com.crm.Tier"}
		]
	}`)
	require.NoError(t, err)

	order, ok := rs.Schema.(*Record)
	require.True(t, ok)
	assert.Equal(t, "com.shop.Order", order.Name.Full())
	require.Len(t, order.Fields, 4)

	status := order.Fields[0].Schema.(*Enum)
	assert.Equal(t, "com.shop.Status", status.Name.Full())

	customer := order.Fields[1].Schema.(*Record)
	assert.Equal(t, "com.crm.Customer", customer.Name.Full())
	assert.Equal(t, "com.crm.Tier", customer.Fields[0].Schema.(*Enum).Name.Full())

	previous := order.Fields[2].Schema.(*Union)
	require.Len(t, previous.Branches, 2)
	assert.Equal(t, Null{}, previous.Branches[0])
	assert.Equal(t, []string{"NEW", "PAID"}, previous.Branches[1].(*Enum).Symbols)

	tier := order.Fields[3].Schema.(*Enum)
	assert.Equal(t, "com.crm.Tier", tier.Name.Full())
	assert.Equal(t, "Tier", tier.Name.Leaf())
}

func TestResolve_DottedNameWinsOverNamespace(t *testing.T) {
	rs, err := Resolve(1, `{"type": "record", "name": "a.b.Thing", "namespace": "ignored", "fields": []}`)
	require.NoError(t, err)
	assert.Equal(t, "a.b.Thing", rs.Schema.(*Record).Name.Full())
}

func TestResolve_MissingReference(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{
			name:   "unknown type",
			schema: `{"type": "record", "name": "R", "fields": [{"name": "x", "type": "Nope"}]}`,
		},
		{
			name: "reference outside its namespace",
			schema: `{
				"type": "record", "name": "Order", "namespace": "com.shop",
				"fields": [
					{"name": "a", "type": {"type": "enum", "name": "Tier", "namespace": "com.crm", "symbols": ["GOLD"]}},
					{"name": "b", "type": "Tier"}
				]
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(1, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingSchemaReference))
		})
	}
}

func TestResolve_Recursive(t *testing.T) {
	tests := []struct {
		name   string
		schema string
	}{
		{
			name: "direct",
			schema: `{"type": "record", "name": "Node", "fields": [
				{"name": "next", "type": ["null", "Node"]}
			]}`,
		},
		{
			name: "transitive",
			schema: `{"type": "record", "name": "A", "fields": [
				{"name": "b", "type": {"type": "record", "name": "B", "fields": [
					{"name": "items", "type": {"type": "array", "items": "A"}}
				]}}
			]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(1, tt.schema)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedRecursiveSchema))
			assert.Equal(t, "unsupported_recursive_schema", Kind(err))
		})
	}
}

func TestResolve_RepeatedReferenceIsNotRecursion(t *testing.T) {
	rs, err := Resolve(1, `{"type": "record", "name": "Pair", "fields": [
		{"name": "left", "type": {"type": "record", "name": "Point", "fields": [{"name": "x", "type": "int"}]}},
		{"name": "right", "type": "Point"}
	]}`)
	require.NoError(t, err)

	pair := rs.Schema.(*Record)
	assert.Equal(t, pair.Fields[0].Schema, pair.Fields[1].Schema)
}

func TestResolve_LogicalTypes(t *testing.T) {
	rs, err := Resolve(1, `{"type": "record", "name": "L", "fields": [
		{"name": "id", "type": {"type": "string", "logicalType": "uuid"}},
		{"name": "day", "type": {"type": "int", "logicalType": "date"}},
		{"name": "tm", "type": {"type": "int", "logicalType": "time-millis"}},
		{"name": "tu", "type": {"type": "long", "logicalType": "time-micros"}},
		{"name": "ts", "type": {"type": "long", "logicalType": "timestamp-millis"}},
		{"name": "tsu", "type": {"type": "long", "logicalType": "timestamp-micros"}},
		{"name": "amount", "type": {"type": "bytes", "logicalType": "decimal", "precision": 9, "scale": 2}},
		{"name": "money", "type": {"type": "fixed", "name": "Money", "size": 8, "logicalType": "decimal", "precision": 10, "scale": 2}},
		{"name": "period", "type": {"type": "fixed", "name": "Period", "size": 12, "logicalType": "duration"}},
		{"name": "odd", "type": {"type": "long", "logicalType": "date"}},
		{"name": "bad", "type": {"type": "bytes", "logicalType": "decimal", "precision": 2, "scale": 3}}
	]}`)
	require.NoError(t, err)

	fields := rs.Schema.(*Record).Fields
	assert.Equal(t, Uuid{}, fields[0].Schema)
	assert.Equal(t, Date{}, fields[1].Schema)
	assert.Equal(t, TimeMillis{}, fields[2].Schema)
	assert.Equal(t, TimeMicros{}, fields[3].Schema)
	assert.Equal(t, TimestampMillis{}, fields[4].Schema)
	assert.Equal(t, TimestampMicros{}, fields[5].Schema)
	assert.Equal(t, &Decimal{Precision: 9, Scale: 2}, fields[6].Schema)
	assert.Equal(t, &Decimal{Precision: 10, Scale: 2, FixedName: Name{Local: "Money"}, FixedSize: 8}, fields[7].Schema)
	assert.Equal(t, &Duration{Name: Name{Local: "Period"}}, fields[8].Schema)
	assert.Equal(t, Long{}, fields[9].Schema)
	assert.Equal(t, Bytes{}, fields[10].Schema)
}

func TestResolve_InvalidSchema(t *testing.T) {
	for _, schema := range []string{
		`not json`,
		`{"type": "record", "fields": []}`,
		`{"type": "fixed", "name": "F"}`,
		`{"type": "record", "name": "R", "fields": [{"type": "int"}]}`,
		`{"type": "record", "name": "R", "fields": [
			{"name": "a", "type": {"type": "enum", "name": "E", "symbols": ["X"]}},
			{"name": "b", "type": {"type": "enum", "name": "E", "symbols": ["Y"]}}
		]}`,
		`[{"type": "fixed", "name": "a.Id", "size": 4}, {"type": "fixed", "name": "b.Id", "size": 8}]`,
		`["null", {"type": "bytes", "logicalType": "decimal", "precision": 4, "scale": 1},
			{"type": "bytes", "logicalType": "decimal", "precision": 9, "scale": 2}]`,
	} {
		_, err := Resolve(1, schema)
		require.Error(t, err, schema)
		assert.True(t, errors.Is(err, ErrInvalidSchema), schema)
	}
}

func TestResolve_ErrorType(t *testing.T) {
	rs, err := Resolve(1, `{"type": "error", "name": "Failure", "fields": [
		{"name": "message", "type": "string"}
	]}`)
	require.NoError(t, err)

	record, ok := rs.Schema.(*Record)
	require.True(t, ok)
	assert.Equal(t, "Failure", record.Name.Full())

	payload, err := Encode(`{"message": "timeout"}`, rs)
	require.NoError(t, err)
	_, output, err := Decode(payload, rs)
	require.NoError(t, err)
	assert.JSONEq(t, `{"message": "timeout"}`, output)
}

func TestMustResolve_Panics(t *testing.T) {
	assert.Panics(t, func() { MustResolve(1, `{"type": "nope"}`) })
}
