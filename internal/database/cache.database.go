package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gamenight/config"

	"github.com/valkey-io/valkey-go"
)

type CacheClient = valkey.Client

// Valkey database index organization. Separate indexes keep user caches and
// session tokens logically apart.
const (
	GENERAL_CACHE_INDEX = iota
	SESSION_CACHE_INDEX
	USER_CACHE_INDEX
)

type Cache struct {
	General CacheClient
	Session CacheClient
	User    CacheClient
}

func (s *DB) initializeCacheDB(config config.Config) error {
	log := s.log.Function("initializeCacheDB")
	log.Info("initializing cache database")

	address := config.CacheAddress
	port := config.CachePort
	if address == "" || port == 0 {
		return log.ErrMsg("cache address or port is empty")
	}

	initAddress := []string{fmt.Sprintf("%s:%d", address, port)}

	var cacheDB Cache
	var err error

	cacheDB.General, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    GENERAL_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create general valkey client", err)
	}

	cacheDB.Session, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    SESSION_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create session valkey client", err)
	}

	cacheDB.User, err = valkey.NewClient(valkey.ClientOption{
		InitAddress: initAddress,
		SelectDB:    USER_CACHE_INDEX,
	})
	if err != nil {
		return log.Err("failed to create user valkey client", err)
	}

	s.Cache = cacheDB
	log.Info("cache database initialized")
	return nil
}

func (c *Cache) Close() {
	if c.General != nil {
		c.General.Close()
	}
	if c.Session != nil {
		c.Session.Close()
	}
	if c.User != nil {
		c.User.Close()
	}
}

// CacheGetJSON reads key into result. The bool reports whether the key was
// present; misses are not errors.
func CacheGetJSON(ctx context.Context, client CacheClient, key string, result any) (bool, error) {
	resp := client.Do(ctx, client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}

	raw, err := resp.AsBytes()
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached value: %w", err)
	}

	return true, nil
}

// CacheSetJSON writes value under key with the given TTL.
func CacheSetJSON(ctx context.Context, client CacheClient, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for cache: %w", err)
	}

	return client.Do(ctx, client.B().Set().
		Key(key).
		Value(string(raw)).
		Ex(ttl).
		Build()).Error()
}

// CacheDelete removes keys; missing keys are ignored.
func CacheDelete(ctx context.Context, client CacheClient, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return client.Do(ctx, client.B().Del().Key(keys...).Build()).Error()
}
