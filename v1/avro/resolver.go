package avro

import (
	"encoding/json"
	"math"

	"github.com/linkedin/goavro/v2"
)

// ResolvedSchema is a registry schema ready for conversion: the reference-free Schema tree
// that drives the JSON mapping, plus the binary codec built from the original definition.
//
// A ResolvedSchema is immutable and safe to share between goroutines.
type ResolvedSchema struct {
	// ID is the registry id written into the wire header.
	ID int32

	// Schema is the flattened schema tree.
	Schema Schema

	// Definition is the schema text the registry returned.
	Definition string

	binary *goavro.Codec
}

// namedDef is an entry of the reference table built by the pre-pass.
type namedDef struct {
	node map[string]interface{}
	// namespace enclosing the definition; flattening node against it yields the same name again.
	namespace string
}

type resolver struct {
	named  map[string]namedDef
	active map[string]bool
}

// Resolve flattens an Avro schema definition into a reference-free Schema and prepares
// the binary codec for it.
//
// Parameters:
//   - id: The registry id of the schema
//   - definition: The textual (JSON) Avro schema
//
// Returns:
//   - *ResolvedSchema: The resolved schema
//   - error: ErrInvalidSchema for malformed definitions, ErrMissingSchemaReference for
//     unknown named types and ErrUnsupportedRecursiveSchema for self-referencing types
//
// Example:
//
//	rs, err := avro.Resolve(42, `{"type":"record","name":"User","fields":[{"name":"id","type":"long"}]}`)
//	if err != nil {
//	    return err
//	}
//	_, text, err := avro.Decode(payload, rs)
func Resolve(id int32, definition string) (*ResolvedSchema, error) {
	var raw interface{}
	if err := json.Unmarshal([]byte(definition), &raw); err != nil {
		return nil, wrapError(ErrInvalidSchema, err, "schema %d is not valid JSON", id)
	}

	r := &resolver{
		named:  make(map[string]namedDef),
		active: make(map[string]bool),
	}
	if err := r.collect(raw, ""); err != nil {
		return nil, err
	}
	schema, err := r.flatten(raw, "")
	if err != nil {
		return nil, err
	}

	physical, err := json.Marshal(stripLogicalTypes(raw))
	if err != nil {
		return nil, wrapError(ErrInvalidSchema, err, "schema %d", id)
	}
	codec, err := goavro.NewCodec(string(physical))
	if err != nil {
		return nil, wrapError(ErrInvalidSchema, err, "schema %d", id)
	}

	return &ResolvedSchema{
		ID:         id,
		Schema:     schema,
		Definition: definition,
		binary:     codec,
	}, nil
}

// MustResolve is like Resolve but panics on error. It is meant for schemas embedded
// in programs and tests.
func MustResolve(id int32, definition string) *ResolvedSchema {
	rs, err := Resolve(id, definition)
	if err != nil {
		panic(err)
	}
	return rs
}

// collect is the pre-pass: it registers every named type under its qualified name.
func (r *resolver) collect(node interface{}, namespace string) error {
	switch n := node.(type) {
	case []interface{}:
		for _, branch := range n {
			if err := r.collect(branch, namespace); err != nil {
				return err
			}
		}
	case map[string]interface{}:
		typ, ok := n["type"].(string)
		if !ok {
			return r.collect(n["type"], namespace)
		}
		switch typ {
		case "record", "error":
			name, err := r.register(n, namespace)
			if err != nil {
				return err
			}
			fields, _ := n["fields"].([]interface{})
			for _, f := range fields {
				field, ok := f.(map[string]interface{})
				if !ok {
					return newError(ErrInvalidSchema, "record %s has a non-object field", name)
				}
				if err := r.collect(field["type"], name.Space); err != nil {
					return err
				}
			}
		case "enum", "fixed":
			if _, err := r.register(n, namespace); err != nil {
				return err
			}
		case "array":
			return r.collect(n["items"], namespace)
		case "map":
			return r.collect(n["values"], namespace)
		}
	}
	return nil
}

func (r *resolver) register(node map[string]interface{}, namespace string) (Name, error) {
	name, err := qualifiedName(node, namespace)
	if err != nil {
		return Name{}, err
	}
	if _, exists := r.named[name.Full()]; exists {
		return Name{}, newError(ErrInvalidSchema, "duplicate definition of %s", name)
	}
	r.named[name.Full()] = namedDef{node: node, namespace: namespace}
	return name, nil
}

func qualifiedName(node map[string]interface{}, enclosing string) (Name, error) {
	local, _ := node["name"].(string)
	if local == "" {
		return Name{}, newError(ErrInvalidSchema, "named type without a name")
	}
	namespace := enclosing
	if ns, ok := node["namespace"].(string); ok {
		namespace = ns
	}
	return parseName(local, namespace), nil
}

// lookup finds a referenced named type, trying the namespace-qualified name first.
func (r *resolver) lookup(ref, namespace string) (namedDef, bool) {
	if def, ok := r.named[parseName(ref, namespace).Full()]; ok {
		return def, true
	}
	def, ok := r.named[ref]
	return def, ok
}

// flatten builds the Schema tree, inlining a fresh copy of the target for every reference.
func (r *resolver) flatten(node interface{}, namespace string) (Schema, error) {
	switch n := node.(type) {
	case string:
		if s, ok := primitive(n); ok {
			return s, nil
		}
		def, ok := r.lookup(n, namespace)
		if !ok {
			return nil, newError(ErrMissingSchemaReference, "%s (namespace %q)", n, namespace)
		}
		return r.flatten(def.node, def.namespace)

	case []interface{}:
		branches := make([]Schema, 0, len(n))
		keys := make(map[string]bool, len(n))
		for _, b := range n {
			s, err := r.flatten(b, namespace)
			if err != nil {
				return nil, err
			}
			// the JSON form only names a branch by its key
			key := branchKey(s)
			if keys[key] {
				return nil, newError(ErrInvalidSchema, "union has more than one %q branch", key)
			}
			keys[key] = true
			branches = append(branches, s)
		}
		return &Union{Branches: branches}, nil

	case map[string]interface{}:
		typ, ok := n["type"].(string)
		if !ok {
			if n["type"] == nil {
				return nil, newError(ErrInvalidSchema, "schema object without a type")
			}
			return r.flatten(n["type"], namespace)
		}
		switch typ {
		case "record", "error":
			return r.flattenRecord(n, namespace)
		case "enum":
			return flattenEnum(n, namespace)
		case "fixed":
			return flattenFixed(n, namespace)
		case "array":
			items, err := r.flatten(n["items"], namespace)
			if err != nil {
				return nil, err
			}
			return &Array{Items: items}, nil
		case "map":
			values, err := r.flatten(n["values"], namespace)
			if err != nil {
				return nil, err
			}
			return &Map{Values: values}, nil
		}
		if s, ok := primitive(typ); ok {
			return logical(s, n), nil
		}
		return r.flatten(typ, namespace)
	}
	return nil, newError(ErrInvalidSchema, "unexpected schema node %T", node)
}

func (r *resolver) flattenRecord(node map[string]interface{}, namespace string) (Schema, error) {
	name, err := qualifiedName(node, namespace)
	if err != nil {
		return nil, err
	}
	if r.active[name.Full()] {
		return nil, newError(ErrUnsupportedRecursiveSchema, "%s references itself", name)
	}
	r.active[name.Full()] = true
	defer delete(r.active, name.Full())

	raw, _ := node["fields"].([]interface{})
	fields := make([]Field, 0, len(raw))
	for _, f := range raw {
		field, _ := f.(map[string]interface{})
		fieldName, _ := field["name"].(string)
		if fieldName == "" {
			return nil, newError(ErrInvalidSchema, "record %s has a field without a name", name)
		}
		s, err := r.flatten(field["type"], name.Space)
		if err != nil {
			return nil, err
		}
		fields = append(fields, Field{Name: fieldName, Schema: s})
	}
	return NewRecord(name, fields), nil
}

func flattenEnum(node map[string]interface{}, namespace string) (Schema, error) {
	name, err := qualifiedName(node, namespace)
	if err != nil {
		return nil, err
	}
	raw, _ := node["symbols"].([]interface{})
	symbols := make([]string, 0, len(raw))
	for _, s := range raw {
		symbol, ok := s.(string)
		if !ok {
			return nil, newError(ErrInvalidSchema, "enum %s has a non-string symbol", name)
		}
		symbols = append(symbols, symbol)
	}
	return &Enum{Name: name, Symbols: symbols}, nil
}

func flattenFixed(node map[string]interface{}, namespace string) (Schema, error) {
	name, err := qualifiedName(node, namespace)
	if err != nil {
		return nil, err
	}
	size, ok := intAttr(node, "size")
	if !ok || size < 0 {
		return nil, newError(ErrInvalidSchema, "fixed %s has an invalid size", name)
	}

	switch node["logicalType"] {
	case "decimal":
		if precision, scale, ok := decimalAttrs(node); ok {
			return &Decimal{Precision: precision, Scale: scale, FixedName: name, FixedSize: size}, nil
		}
	case "duration":
		if size == 12 {
			return &Duration{Name: name}, nil
		}
	}
	return &Fixed{Name: name, Size: size}, nil
}

func primitive(name string) (Schema, bool) {
	switch name {
	case "null":
		return Null{}, true
	case "boolean":
		return Boolean{}, true
	case "int":
		return Int{}, true
	case "long":
		return Long{}, true
	case "float":
		return Float{}, true
	case "double":
		return Double{}, true
	case "bytes":
		return Bytes{}, true
	case "string":
		return String{}, true
	}
	return nil, false
}

// logical applies a logicalType annotation to a primitive. Unknown or invalid
// annotations leave the underlying type untouched.
func logical(base Schema, node map[string]interface{}) Schema {
	lt, _ := node["logicalType"].(string)
	switch base.(type) {
	case String:
		if lt == "uuid" {
			return Uuid{}
		}
	case Int:
		switch lt {
		case "date":
			return Date{}
		case "time-millis":
			return TimeMillis{}
		}
	case Long:
		switch lt {
		case "time-micros":
			return TimeMicros{}
		case "timestamp-millis":
			return TimestampMillis{}
		case "timestamp-micros":
			return TimestampMicros{}
		}
	case Bytes:
		if lt == "decimal" {
			if precision, scale, ok := decimalAttrs(node); ok {
				return &Decimal{Precision: precision, Scale: scale}
			}
		}
	}
	return base
}

func decimalAttrs(node map[string]interface{}) (int, int, bool) {
	precision, ok := intAttr(node, "precision")
	if !ok || precision <= 0 {
		return 0, 0, false
	}
	scale := 0
	if _, present := node["scale"]; present {
		if scale, ok = intAttr(node, "scale"); !ok {
			return 0, 0, false
		}
	}
	if scale < 0 || scale > precision {
		return 0, 0, false
	}
	return precision, scale, true
}

func intAttr(node map[string]interface{}, key string) (int, bool) {
	f, ok := node[key].(float64)
	if !ok || f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// stripLogicalTypes returns a copy of a schema definition without logicalType
// annotations. Logical types never change the binary layout, and keeping the binary
// layer unaware of them leaves all logical conversions to the Decoder and Encoder.
func stripLogicalTypes(node interface{}) interface{} {
	switch n := node.(type) {
	case []interface{}:
		out := make([]interface{}, len(n))
		for i, b := range n {
			out[i] = stripLogicalTypes(b)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(n))
		for k, v := range n {
			switch k {
			case "logicalType":
				continue
			case "type":
				// the binary layer only knows "record"; an error has the same layout
				if v == "error" && n["fields"] != nil {
					out[k] = "record"
					continue
				}
				out[k] = stripLogicalTypes(v)
			case "items", "values":
				out[k] = stripLogicalTypes(v)
			case "fields":
				fields, ok := v.([]interface{})
				if !ok {
					out[k] = v
					continue
				}
				stripped := make([]interface{}, len(fields))
				for i, f := range fields {
					stripped[i] = stripLogicalTypes(f)
				}
				out[k] = stripped
			default:
				out[k] = v
			}
		}
		return out
	}
	return node
}
