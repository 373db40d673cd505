package avro

import (
	"errors"
	"fmt"
)

// Error kinds returned by the codec. Every error produced by this package wraps
// exactly one of them, so callers can branch with errors.Is.
var (
	// ErrInvalidHeader is returned when a record does not start with the 5-byte Confluent header.
	ErrInvalidHeader = errors.New("invalid header")

	// ErrInvalidSchema is returned when a schema definition cannot be parsed.
	ErrInvalidSchema = errors.New("invalid schema")

	// ErrMissingSchemaReference is returned when a named type reference cannot be resolved.
	ErrMissingSchemaReference = errors.New("missing schema reference")

	// ErrUnsupportedRecursiveSchema is returned when a named type references itself,
	// directly or transitively.
	ErrUnsupportedRecursiveSchema = errors.New("unsupported recursive schema")

	// ErrMissingField is returned when a record field is absent from the value or the schema.
	ErrMissingField = errors.New("missing field")

	// ErrInvalidUnion is returned when no union branch matches a value.
	ErrInvalidUnion = errors.New("invalid union")

	// ErrInvalidEnum is returned when a string is not one of the enum symbols.
	ErrInvalidEnum = errors.New("invalid enum")

	// ErrInvalidNumber is returned when a JSON value cannot be represented by a numeric type.
	ErrInvalidNumber = errors.New("invalid number")

	// ErrInvalidUUID is returned when a string is not a valid UUID.
	ErrInvalidUUID = errors.New("invalid uuid")

	// ErrParseAvroValue wraps failures of the binary Avro layer.
	ErrParseAvroValue = errors.New("parse avro value")

	// ErrParseJSONValue is returned for malformed JSON input.
	ErrParseJSONValue = errors.New("parse json value")

	// ErrSchemaProvider wraps failures of the schema provider.
	ErrSchemaProvider = errors.New("schema provider error")

	// ErrUnsupported is returned for schema/value combinations not covered above.
	ErrUnsupported = errors.New("unsupported")
)

var kindLabels = map[error]string{
	ErrInvalidHeader:              "invalid_header",
	ErrInvalidSchema:              "invalid_schema",
	ErrMissingSchemaReference:     "missing_schema_reference",
	ErrUnsupportedRecursiveSchema: "unsupported_recursive_schema",
	ErrMissingField:               "missing_field",
	ErrInvalidUnion:               "invalid_union",
	ErrInvalidEnum:                "invalid_enum",
	ErrInvalidNumber:              "invalid_number",
	ErrInvalidUUID:                "invalid_uuid",
	ErrParseAvroValue:             "parse_avro_value",
	ErrParseJSONValue:             "parse_json_value",
	ErrSchemaProvider:             "schema_provider",
	ErrUnsupported:                "unsupported",
}

// Error is the concrete error type of the codec. Kind is one of the Err* sentinels,
// Context describes where the failure happened and Err is the optional cause.
type Error struct {
	Kind    error
	Context string
	Err     error
}

func (e *Error) Error() string {
	msg := "avro: " + e.Kind.Error()
	if e.Context != "" {
		msg += ": " + e.Context
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...)}
}

func wrapError(kind error, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Context: fmt.Sprintf(format, args...), Err: cause}
}

// Kind returns a stable snake_case label for the kind of err, "unknown" for errors
// that did not originate in this package and "" for nil.
func Kind(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		if label, ok := kindLabels[e.Kind]; ok {
			return label
		}
	}
	return "unknown"
}

// IsMissingField reports whether err is a missing record field error.
func IsMissingField(err error) bool {
	return errors.Is(err, ErrMissingField)
}

// IsInvalidHeader reports whether err was caused by a record without a valid wire header.
func IsInvalidHeader(err error) bool {
	return errors.Is(err, ErrInvalidHeader)
}

// IsSchemaProviderError reports whether err came from the schema provider.
func IsSchemaProviderError(err error) bool {
	return errors.Is(err, ErrSchemaProvider)
}
