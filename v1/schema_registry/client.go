package schema_registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTimeout is used when Config.Timeout is zero.
const DefaultTimeout = 10 * time.Second

const contentType = "application/vnd.schemaregistry.v1+json"

// Registry provides an interface for interacting with a Confluent Schema Registry.
// It handles schema registration and retrieval.
//
//go:generate mockgen -source=client.go -destination=mock_registry.go -package=schema_registry
type Registry interface {
	// GetSchemaByID retrieves a schema by its ID
	GetSchemaByID(ctx context.Context, id int) (*Metadata, error)

	// GetLatestSchema retrieves the latest version of a schema for a subject
	GetLatestSchema(ctx context.Context, subject string) (*Metadata, error)

	// ListSubjects returns every subject known to the registry
	ListSubjects(ctx context.Context) ([]string, error)

	// RegisterSchema registers a new schema for a subject
	RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error)

	// CheckCompatibility checks if a schema is compatible with the latest version
	CheckCompatibility(ctx context.Context, subject, schema, schemaType string) (bool, error)
}

// Metadata contains metadata about a registered schema
type Metadata struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
	Subject string `json:"subject"`
	Type    string `json:"schemaType,omitempty"`
}

// SchemaType returns the declared type of the schema. The registry omits the field
// for Avro schemas.
func (m *Metadata) SchemaType() string {
	if m.Type == "" {
		return "AVRO"
	}
	return strings.ToUpper(m.Type)
}

// ErrNotFound is matched by StatusError values carrying HTTP 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the registry answers with a non-200 status.
type StatusError struct {
	StatusCode int
	// Code is the registry error code, e.g. 40403 for an unknown schema id.
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("schema registry returned status %d (error code %d): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("schema registry returned status %d: %s", e.StatusCode, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) true for 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// IsNotFound reports whether err is a 404 answer from the registry.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Client is the default implementation of Registry
// that communicates with Confluent Schema Registry over HTTP.
type Client struct {
	url        string
	httpClient *http.Client

	// Cache for schemas by ID; registry ids are immutable
	schemaCache      map[int]*Metadata
	schemaCacheMutex sync.RWMutex

	// Cache for schema IDs by subject and schema
	idCache      map[string]int
	idCacheMutex sync.RWMutex

	// Authentication
	username string
	password string
}

// Config holds configuration for schema registry client
type Config struct {
	// URL is the schema registry endpoint (e.g., "http://localhost:8081")
	URL string `yaml:"url" envconfig:"SCHEMA_REGISTRY_URL" mapstructure:"url"`

	// Username for basic auth (optional)
	Username string `yaml:"username" envconfig:"SCHEMA_REGISTRY_USERNAME" mapstructure:"username"`

	// Password for basic auth (optional)
	Password string `yaml:"password" envconfig:"SCHEMA_REGISTRY_PASSWORD" mapstructure:"password"`

	// Timeout for HTTP requests
	Timeout time.Duration `yaml:"timeout" envconfig:"SCHEMA_REGISTRY_TIMEOUT" mapstructure:"timeout"`

	// SubjectCacheTTL bounds how long the Provider serves a cached "latest" schema for
	// a subject. Zero selects DefaultSubjectCacheTTL.
	SubjectCacheTTL time.Duration `yaml:"subject_cache_ttl" envconfig:"SCHEMA_REGISTRY_SUBJECT_CACHE_TTL" mapstructure:"subject_cache_ttl"`
}

// NewClient creates a new schema registry client
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url: strings.TrimRight(config.URL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		schemaCache: make(map[int]*Metadata),
		idCache:     make(map[string]int),
		username:    config.Username,
		password:    config.Password,
	}, nil
}

// HTTPClient exposes the underlying HTTP client, e.g. to install a transport.
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// GetSchemaByID retrieves a schema from the registry by its ID
func (c *Client) GetSchemaByID(ctx context.Context, id int) (*Metadata, error) {
	// Check cache first
	c.schemaCacheMutex.RLock()
	if metadata, ok := c.schemaCache[id]; ok {
		c.schemaCacheMutex.RUnlock()
		return metadata, nil
	}
	c.schemaCacheMutex.RUnlock()

	var result struct {
		Schema string `json:"schema"`
		Type   string `json:"schemaType"`
	}
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/schemas/ids/%d", id), nil, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch schema %d: %w", id, err)
	}

	metadata := &Metadata{ID: id, Schema: result.Schema, Type: result.Type}

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[id] = metadata
	c.schemaCacheMutex.Unlock()

	return metadata, nil
}

// GetLatestSchema retrieves the latest version of a schema for a subject
func (c *Client) GetLatestSchema(ctx context.Context, subject string) (*Metadata, error) {
	var metadata Metadata
	path := fmt.Sprintf("/subjects/%s/versions/latest", url.PathEscape(subject))
	if err := c.do(ctx, http.MethodGet, path, nil, &metadata); err != nil {
		return nil, fmt.Errorf("failed to fetch latest schema of %s: %w", subject, err)
	}

	metadata.Subject = subject

	// Cache the schema
	c.schemaCacheMutex.Lock()
	c.schemaCache[metadata.ID] = &Metadata{ID: metadata.ID, Schema: metadata.Schema, Type: metadata.Type}
	c.schemaCacheMutex.Unlock()

	return &metadata, nil
}

// ListSubjects returns the subjects registered in the registry
func (c *Client) ListSubjects(ctx context.Context) ([]string, error) {
	var subjects []string
	if err := c.do(ctx, http.MethodGet, "/subjects", nil, &subjects); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// RegisterSchema registers a new schema with the schema registry
func (c *Client) RegisterSchema(ctx context.Context, subject, schema, schemaType string) (int, error) {
	// Check cache first
	cacheKey := fmt.Sprintf("%s:%s:%s", subject, schemaType, schema)
	c.idCacheMutex.RLock()
	if id, ok := c.idCache[cacheKey]; ok {
		c.idCacheMutex.RUnlock()
		return id, nil
	}
	c.idCacheMutex.RUnlock()

	var result struct {
		ID int `json:"id"`
	}
	path := fmt.Sprintf("/subjects/%s/versions", url.PathEscape(subject))
	if err := c.do(ctx, http.MethodPost, path, schemaPayload(schema, schemaType), &result); err != nil {
		return 0, fmt.Errorf("failed to register schema: %w", err)
	}

	// Cache the ID
	c.idCacheMutex.Lock()
	c.idCache[cacheKey] = result.ID
	c.idCacheMutex.Unlock()

	return result.ID, nil
}

// CheckCompatibility checks if a schema is compatible with the existing schema for a subject
func (c *Client) CheckCompatibility(ctx context.Context, subject, schema, schemaType string) (bool, error) {
	var result struct {
		IsCompatible bool `json:"is_compatible"`
	}
	path := fmt.Sprintf("/compatibility/subjects/%s/versions/latest", url.PathEscape(subject))
	if err := c.do(ctx, http.MethodPost, path, schemaPayload(schema, schemaType), &result); err != nil {
		return false, fmt.Errorf("failed to check compatibility: %w", err)
	}

	return result.IsCompatible, nil
}

func schemaPayload(schema, schemaType string) map[string]interface{} {
	payload := map[string]interface{}{
		"schema": schema,
	}
	if schemaType != "" && schemaType != "AVRO" {
		payload["schemaType"] = schemaType
	}
	return payload
}

// do sends one request and decodes a 200 answer into out.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", contentType)
	if payload != nil {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func newStatusError(resp *http.Response) *StatusError {
	body, _ := io.ReadAll(resp.Body)
	statusErr := &StatusError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}

	var registryErr struct {
		ErrorCode int    `json:"error_code"`
		Message   string `json:"message"`
	}
	if json.Unmarshal(body, &registryErr) == nil && registryErr.Message != "" {
		statusErr.Code = registryErr.ErrorCode
		statusErr.Message = registryErr.Message
	}
	return statusErr
}
