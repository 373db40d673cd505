package redis

import (
	"context"
	"strconv"
	"time"
)

// Ping checks if the Redis server is reachable and responsive.
func (r *RedisClient) Ping(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.client == nil {
		return ErrClosed
	}
	return r.client.Ping(ctx).Err()
}

// GetSchema returns the schema text stored for a registry id.
// found is false, with a nil error, when the id has not been stored yet.
func (r *RedisClient) GetSchema(ctx context.Context, id int32) (definition string, found bool, err error) {
	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.client == nil {
		return "", false, ErrClosed
	}

	definition, err = r.client.Get(ctx, r.schemaKey(id)).Result()
	switch {
	case IsNilError(err):
		r.observeOperation("get_schema", strconv.Itoa(int(id)), time.Since(start), nil, 0, map[string]interface{}{"cache": "miss"})
		return "", false, nil
	case err != nil:
		r.observeOperation("get_schema", strconv.Itoa(int(id)), time.Since(start), err, 0, nil)
		return "", false, err
	}

	r.observeOperation("get_schema", strconv.Itoa(int(id)), time.Since(start), nil, int64(len(definition)), map[string]interface{}{"cache": "hit"})
	return definition, true, nil
}

// PutSchema stores the schema text of a registry id. An id that is already
// stored keeps its first definition.
func (r *RedisClient) PutSchema(ctx context.Context, id int32, definition string) error {
	start := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.client == nil {
		return ErrClosed
	}

	err := r.client.SetNX(ctx, r.schemaKey(id), definition, r.cfg.SchemaTTL).Err()
	metadata := map[string]interface{}{}
	if r.cfg.SchemaTTL > 0 {
		metadata["ttl"] = r.cfg.SchemaTTL.String()
	}
	r.observeOperation("put_schema", strconv.Itoa(int(id)), time.Since(start), err, int64(len(definition)), metadata)
	return err
}

// schemaKey is <prefix>schema:<id>.
func (r *RedisClient) schemaKey(id int32) string {
	return r.cfg.KeyPrefix + "schema:" + strconv.Itoa(int(id))
}
