package redis

import (
	"crypto/tls"
	log "log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/sharedcode/dbconnect"
)

// Redis configurable options.
type Options struct {
	// Redis server(cluster) address.
	Address string
	// Password required when connecting to the Redis server.
	Password string
	// DB to connect to.
	DB int
	// TLS config. ElastiCache clusters with in-transit encryption require it.
	TLSConfig *tls.Config
}

// Connection contains Redis client connection object and the Options used to connect.
type Connection struct {
	Client  *redis.Client
	Options Options
}

// DefaultOptions points at the sample ElastiCache primary endpoint.
func DefaultOptions() Options {
	return Options{
		Address:  dbconnect.DefaultRedisAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	}
}

// OptionsFromConfig converts the module config into connection Options.
func OptionsFromConfig(c dbconnect.RedisCacheConfig) Options {
	o := Options{
		Address:  c.Address,
		Password: c.Password,
		DB:       c.DB,
	}
	if c.UseTLS {
		o.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return o
}

// OpenConnection creates a new connection owned by the caller. No network round trip
// is made; go-redis dials lazily on the first command.
func OpenConnection(options Options) *Connection {
	log.Debug("Opening Redis connection", "address", options.Address, "db", options.DB)
	client := redis.NewClient(&redis.Options{
		TLSConfig: options.TLSConfig,
		Addr:      options.Address,
		Password:  options.Password,
		DB:        options.DB})

	return &Connection{
		Client:  client,
		Options: options,
	}
}

// Close the connection if open.
func (c *Connection) Close() error {
	if c == nil || c.Client == nil {
		return nil
	}
	log.Debug("Closing Redis connection", "address", c.Options.Address)
	err := c.Client.Close()
	c.Client = nil
	return err
}
