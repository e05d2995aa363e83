package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

// CacheBuilder assembles a single cache command. A nil client turns every
// operation into a no-op so callers do not branch on whether caching is on.
type CacheBuilder struct {
	client CacheClient
	key    string
	value  any
	ttl    time.Duration
	ctx    context.Context
}

func NewCacheBuilder(client CacheClient, key any) *CacheBuilder {
	return &CacheBuilder{
		client: client,
		key:    fmt.Sprint(key),
		ctx:    context.Background(),
	}
}

func (cb *CacheBuilder) WithStruct(value any) *CacheBuilder {
	cb.value = value
	return cb
}

func (cb *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	cb.ttl = ttl
	return cb
}

func (cb *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	if ctx != nil {
		cb.ctx = ctx
	}
	return cb
}

func (cb *CacheBuilder) Set() error {
	if cb.client == nil {
		return nil
	}

	payload, err := json.Marshal(cb.value)
	if err != nil {
		return fmt.Errorf("marshal cache value for %s: %w", cb.key, err)
	}

	var cmd valkey.Completed
	if seconds := int64(cb.ttl / time.Second); seconds > 0 {
		cmd = cb.client.B().Set().Key(cb.key).Value(string(payload)).ExSeconds(seconds).Build()
	} else {
		cmd = cb.client.B().Set().Key(cb.key).Value(string(payload)).Build()
	}

	if err := cb.client.Do(cb.ctx, cmd).Error(); err != nil {
		return fmt.Errorf("set cache key %s: %w", cb.key, err)
	}
	return nil
}

// Get decodes the cached value into dest. found is false on a miss.
func (cb *CacheBuilder) Get(dest any) (found bool, err error) {
	if cb.client == nil {
		return false, nil
	}

	payload, err := cb.client.Do(cb.ctx, cb.client.B().Get().Key(cb.key).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get cache key %s: %w", cb.key, err)
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("unmarshal cache value for %s: %w", cb.key, err)
	}
	return true, nil
}

func (cb *CacheBuilder) Delete() error {
	if cb.client == nil {
		return nil
	}

	if err := cb.client.Do(cb.ctx, cb.client.B().Del().Key(cb.key).Build()).Error(); err != nil {
		return fmt.Errorf("delete cache key %s: %w", cb.key, err)
	}
	return nil
}
