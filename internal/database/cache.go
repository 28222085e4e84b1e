package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"
)

type CacheItem[T any] struct {
	Cache       CacheClient
	Key         string
	Value       T
	Expiry      *time.Duration
	HashPattern *string
}

func (ci CacheItem[T]) cacheKey() string {
	if ci.HashPattern != nil {
		return fmt.Sprintf(*ci.HashPattern, ci.Key)
	}
	return ci.Key
}

func (ci CacheItem[T]) SetValue(ctx context.Context) error {
	payload, err := json.Marshal(ci.Value)
	if err != nil {
		return err
	}

	cmd := ci.Cache.B().Set().Key(ci.cacheKey()).Value(string(payload))
	if ci.Expiry != nil {
		return ci.Cache.Do(ctx, cmd.Ex(*ci.Expiry).Build()).Error()
	}
	return ci.Cache.Do(ctx, cmd.Build()).Error()
}

func (ci CacheItem[T]) DeleteCachedValue(ctx context.Context) error {
	return ci.Cache.Do(ctx, ci.Cache.B().Del().Key(ci.cacheKey()).Build()).Error()
}

// CacheBuilder is the fluent front door repositories use for cache-aside
// reads and writes.
type CacheBuilder struct {
	cache CacheClient
	key   string
	value any
	ttl   *time.Duration
	ctx   context.Context
}

func NewCacheBuilder(cache CacheClient, key string) *CacheBuilder {
	return &CacheBuilder{
		cache: cache,
		key:   key,
		ctx:   context.Background(),
	}
}

func (b *CacheBuilder) WithStruct(value any) *CacheBuilder {
	b.value = value
	return b
}

func (b *CacheBuilder) WithTTL(ttl time.Duration) *CacheBuilder {
	b.ttl = &ttl
	return b
}

func (b *CacheBuilder) WithContext(ctx context.Context) *CacheBuilder {
	b.ctx = ctx
	return b
}

func (b *CacheBuilder) Set() error {
	payload, err := json.Marshal(b.value)
	if err != nil {
		return err
	}

	cmd := b.cache.B().Set().Key(b.key).Value(string(payload))
	if b.ttl != nil {
		return b.cache.Do(b.ctx, cmd.Ex(*b.ttl).Build()).Error()
	}
	return b.cache.Do(b.ctx, cmd.Build()).Error()
}

// Get unmarshals the cached value into dest. The boolean reports whether the
// key was present; a miss is not an error.
func (b *CacheBuilder) Get(dest any) (bool, error) {
	resp := b.cache.Do(b.ctx, b.cache.B().Get().Key(b.key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	payload, err := resp.AsBytes()
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, err
	}

	return true, nil
}

func (b *CacheBuilder) Delete() error {
	return b.cache.Do(b.ctx, b.cache.B().Del().Key(b.key).Build()).Error()
}
