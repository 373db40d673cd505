package schema_registry

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const registryURL = "http://registry:8081"

func newTestClient(t *testing.T, cfg Config) *Client {
	t.Helper()
	if cfg.URL == "" {
		cfg.URL = registryURL
	}
	c, err := NewClient(cfg)
	require.NoError(t, err)
	httpmock.ActivateNonDefault(c.HTTPClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func TestNewClient_RequiresURL(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}

func TestGetSchemaByID(t *testing.T) {
	c := newTestClient(t, Config{Username: "user", Password: "secret"})

	httpmock.RegisterResponder("GET", registryURL+"/schemas/ids/100037",
		func(req *http.Request) (*http.Response, error) {
			user, pass, ok := req.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, "user", user)
			assert.Equal(t, "secret", pass)
			assert.Equal(t, contentType, req.Header.Get("Accept"))
			return httpmock.NewStringResponse(200, `{"schema": "\"string\""}`), nil
		})

	metadata, err := c.GetSchemaByID(context.Background(), 100037)
	require.NoError(t, err)
	assert.Equal(t, 100037, metadata.ID)
	assert.Equal(t, `"string"`, metadata.Schema)
	assert.Equal(t, "AVRO", metadata.SchemaType())

	// served from the id cache
	_, err = c.GetSchemaByID(context.Background(), 100037)
	require.NoError(t, err)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestGetSchemaByID_NotFound(t *testing.T) {
	c := newTestClient(t, Config{})

	httpmock.RegisterResponder("GET", registryURL+"/schemas/ids/7",
		httpmock.NewStringResponder(404, `{"error_code": 40403, "message": "Schema 7 not found"}`))

	_, err := c.GetSchemaByID(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 404, statusErr.StatusCode)
	assert.Equal(t, 40403, statusErr.Code)
	assert.Equal(t, "Schema 7 not found", statusErr.Message)
}

func TestGetSchemaByID_ServerError(t *testing.T) {
	c := newTestClient(t, Config{})

	httpmock.RegisterResponder("GET", registryURL+"/schemas/ids/7",
		httpmock.NewStringResponder(500, "boom"))

	_, err := c.GetSchemaByID(context.Background(), 7)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "status 500: boom")
}

func TestGetLatestSchema(t *testing.T) {
	c := newTestClient(t, Config{})

	httpmock.RegisterResponder("GET", registryURL+"/subjects/users-value/versions/latest",
		httpmock.NewStringResponder(200, `{"id": 12, "version": 3, "schema": "\"long\"", "subject": "users-value"}`))

	metadata, err := c.GetLatestSchema(context.Background(), "users-value")
	require.NoError(t, err)
	assert.Equal(t, 12, metadata.ID)
	assert.Equal(t, 3, metadata.Version)
	assert.Equal(t, "users-value", metadata.Subject)

	// the id is now cached
	byID, err := c.GetSchemaByID(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, `"long"`, byID.Schema)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestListSubjects(t *testing.T) {
	c := newTestClient(t, Config{URL: registryURL + "/"})

	httpmock.RegisterResponder("GET", registryURL+"/subjects",
		httpmock.NewStringResponder(200, `["orders-value", "users-value"]`))

	subjects, err := c.ListSubjects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders-value", "users-value"}, subjects)
}

func TestRegisterSchema(t *testing.T) {
	c := newTestClient(t, Config{})

	httpmock.RegisterResponder("POST", registryURL+"/subjects/users-value/versions",
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"schema": "\"string\""}`, string(body))
			assert.Equal(t, contentType, req.Header.Get("Content-Type"))
			return httpmock.NewStringResponse(200, `{"id": 42}`), nil
		})

	id, err := c.RegisterSchema(context.Background(), "users-value", `"string"`, "AVRO")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	id, err = c.RegisterSchema(context.Background(), "users-value", `"string"`, "AVRO")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

func TestCheckCompatibility(t *testing.T) {
	c := newTestClient(t, Config{})

	httpmock.RegisterResponder("POST", registryURL+"/compatibility/subjects/users-value/versions/latest",
		func(req *http.Request) (*http.Response, error) {
			body, err := io.ReadAll(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"schema": "syntax = \"proto3\";", "schemaType": "PROTOBUF"}`, string(body))
			return httpmock.NewStringResponse(200, `{"is_compatible": false}`), nil
		})

	ok, err := c.CheckCompatibility(context.Background(), "users-value", `syntax = "proto3";`, "PROTOBUF")
	require.NoError(t, err)
	assert.False(t, ok)
}
