package avro

import "strings"

// Schema is a node of a resolved, reference-free Avro schema tree.
//
// The set of implementations is closed: the unexported marker keeps other packages
// from adding variants, so switches over Schema in this package are exhaustive.
type Schema interface {
	schemaNode()
}

// Name is a qualified Avro name.
type Name struct {
	Space string
	Local string
}

// Full returns "namespace.name", or just the name when there is no namespace.
func (n Name) Full() string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + "." + n.Local
}

// Leaf returns the unqualified name.
func (n Name) Leaf() string {
	return n.Local
}

func (n Name) String() string {
	return n.Full()
}

// parseName qualifies name against namespace. A dotted name is already fully qualified
// and ignores namespace.
func parseName(name, namespace string) Name {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return Name{Space: name[:i], Local: name[i+1:]}
	}
	return Name{Space: namespace, Local: name}
}

type (
	Null            struct{}
	Boolean         struct{}
	Int             struct{}
	Long            struct{}
	Float           struct{}
	Double          struct{}
	Bytes           struct{}
	String          struct{}
	Uuid            struct{}
	Date            struct{}
	TimeMillis      struct{}
	TimeMicros      struct{}
	TimestampMillis struct{}
	TimestampMicros struct{}
)

// Duration is the duration logical type: a 12-byte fixed holding three little-endian
// unsigned ints (months, days, milliseconds).
type Duration struct {
	Name Name
}

// Array is an Avro array.
type Array struct {
	Items Schema
}

// Map is an Avro map; keys are always strings.
type Map struct {
	Values Schema
}

// Union is an ordered list of branches; a value selects one branch by position.
type Union struct {
	Branches []Schema
}

// Field is a single record field.
type Field struct {
	Name   string
	Schema Schema
}

// Record is an Avro record with its fields in declaration order.
type Record struct {
	Name   Name
	Fields []Field
	index  map[string]int
}

// NewRecord builds a record and its field lookup.
func NewRecord(name Name, fields []Field) *Record {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Name] = i
	}
	return &Record{Name: name, Fields: fields, index: index}
}

// FieldIndex returns the position of the named field.
func (r *Record) FieldIndex(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Enum is an Avro enum.
type Enum struct {
	Name    Name
	Symbols []string
}

// SymbolIndex returns the position of symbol, or -1.
func (e *Enum) SymbolIndex(symbol string) int {
	for i, s := range e.Symbols {
		if s == symbol {
			return i
		}
	}
	return -1
}

// Fixed is an Avro fixed of Size bytes.
type Fixed struct {
	Name Name
	Size int
}

// Decimal is the decimal logical type. FixedSize is zero when the underlying type
// is bytes; otherwise the value is stored in a fixed named FixedName.
type Decimal struct {
	Precision int
	Scale     int
	FixedName Name
	FixedSize int
}

func (Null) schemaNode()            {}
func (Boolean) schemaNode()         {}
func (Int) schemaNode()             {}
func (Long) schemaNode()            {}
func (Float) schemaNode()           {}
func (Double) schemaNode()          {}
func (Bytes) schemaNode()           {}
func (String) schemaNode()          {}
func (Uuid) schemaNode()            {}
func (Date) schemaNode()            {}
func (TimeMillis) schemaNode()      {}
func (TimeMicros) schemaNode()      {}
func (TimestampMillis) schemaNode() {}
func (TimestampMicros) schemaNode() {}
func (*Duration) schemaNode()       {}
func (*Array) schemaNode()          {}
func (*Map) schemaNode()            {}
func (*Union) schemaNode()          {}
func (*Record) schemaNode()         {}
func (*Enum) schemaNode()           {}
func (*Fixed) schemaNode()          {}
func (*Decimal) schemaNode()        {}

// Type returns the Avro type name of s, including the logical type for annotated
// primitives ("timestamp-millis", "decimal", ...).
func Type(s Schema) string {
	switch s.(type) {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Int:
		return "int"
	case Long:
		return "long"
	case Float:
		return "float"
	case Double:
		return "double"
	case Bytes:
		return "bytes"
	case String:
		return "string"
	case Uuid:
		return "uuid"
	case Date:
		return "date"
	case TimeMillis:
		return "time-millis"
	case TimeMicros:
		return "time-micros"
	case TimestampMillis:
		return "timestamp-millis"
	case TimestampMicros:
		return "timestamp-micros"
	case *Duration:
		return "duration"
	case *Array:
		return "array"
	case *Map:
		return "map"
	case *Union:
		return "union"
	case *Record:
		return "record"
	case *Enum:
		return "enum"
	case *Fixed:
		return "fixed"
	case *Decimal:
		return "decimal"
	}
	return "unknown"
}

// branchKey is the JSON wrapper key of a union branch: the unqualified name for
// named types and for logical types carried by a fixed, the type name otherwise.
func branchKey(s Schema) string {
	switch t := s.(type) {
	case *Record:
		return t.Name.Leaf()
	case *Enum:
		return t.Name.Leaf()
	case *Fixed:
		return t.Name.Leaf()
	case *Duration:
		return t.Name.Leaf()
	case *Decimal:
		if t.FixedSize > 0 {
			return t.FixedName.Leaf()
		}
	}
	return Type(s)
}

// wireName is the branch name the binary layer uses for s inside a union. Logical
// annotations are not visible to the binary layer, so annotated types use their
// underlying type name or the full name of their fixed.
func wireName(s Schema) string {
	switch t := s.(type) {
	case *Record:
		return t.Name.Full()
	case *Enum:
		return t.Name.Full()
	case *Fixed:
		return t.Name.Full()
	case *Duration:
		return t.Name.Full()
	case *Decimal:
		if t.FixedSize > 0 {
			return t.FixedName.Full()
		}
		return "bytes"
	case Uuid:
		return "string"
	case Date, TimeMillis:
		return "int"
	case TimeMicros, TimestampMillis, TimestampMicros:
		return "long"
	}
	return Type(s)
}
