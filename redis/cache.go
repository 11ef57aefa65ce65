// Package redis provides the cache facade over a Redis (ElastiCache for Redis OSS) endpoint.
package redis

import (
	"context"
	"fmt"
	log "log/slog"
	"time"
	"unicode/utf8"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcode/dbconnect"
)

// Commander is the subset of the go-redis command API the cache facade uses.
// *redis.Client satisfies it.
type Commander interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// CacheClient sets and gets string values by key. Each call is one round trip,
// failures are returned as dbconnect.Error and never retried.
type CacheClient struct {
	cmd  Commander
	conn *Connection
}

// NewCacheClient wraps cmd, typically a Connection's Client.
func NewCacheClient(cmd Commander) (*CacheClient, error) {
	if dbconnect.IsNil(cmd) {
		return nil, dbconnect.NewError(dbconnect.ConfigurationError, nil, fmt.Errorf("redis commander can't be nil"))
	}
	return &CacheClient{
		cmd: cmd,
	}, nil
}

// Opens a new Redis connection then returns a client wrapper for it.
// Returned wrapper has "Close" method you can call when you don't need it anymore.
func NewConnectionClient(options Options) *CacheClient {
	c := OpenConnection(options)
	return &CacheClient{
		cmd:  c.Client,
		conn: c,
	}
}

// Close this client's connection. Does nothing if the connection is not owned by this client.
func (c *CacheClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// keyNotFound will detect whether error signifies key not found by Redis.
func keyNotFound(err error) bool {
	return err == redis.Nil
}

// Ping tests connectivity for redis (PONG should be returned).
func (c *CacheClient) Ping(ctx context.Context) error {
	if err := c.cmd.Ping(ctx).Err(); err != nil {
		return dbconnect.NewError(dbconnect.RemoteReadError, "PING", err)
	}
	return nil
}

// SetValue executes the redis Set command with no expiration, overwriting any current value.
func (c *CacheClient) SetValue(ctx context.Context, key string, value string) (dbconnect.Ack, error) {
	status, err := c.cmd.Set(ctx, key, value, 0).Result()
	if err != nil {
		log.Warn("redis set failed", "key", key, "error", err)
		return dbconnect.Ack{}, dbconnect.NewError(dbconnect.RemoteWriteError, key,
			fmt.Errorf("couldn't set key %s, details: %w", key, err))
	}
	log.Debug("redis set succeeded", "key", key, "status", status)
	return dbconnect.Ack{
		Operation: "SET",
		Key:       key,
		Status:    status,
	}, nil
}

// GetValue executes the redis Get command. Key not found is returned as false and nil err.
// The reply bytes are decoded as UTF-8 text.
func (c *CacheClient) GetValue(ctx context.Context, key string) (bool, string, error) {
	ba, err := c.cmd.Get(ctx, key).Bytes()
	if keyNotFound(err) {
		log.Debug("redis key not found", "key", key)
		return false, "", nil
	}
	if err != nil {
		log.Warn("redis get failed", "key", key, "error", err)
		return false, "", dbconnect.NewError(dbconnect.RemoteReadError, key,
			fmt.Errorf("couldn't get key %s, details: %w", key, err))
	}
	if !utf8.Valid(ba) {
		return false, "", dbconnect.NewError(dbconnect.DecodeError, key,
			fmt.Errorf("value of key %s is not valid UTF-8 text", key))
	}
	return true, string(ba), nil
}
