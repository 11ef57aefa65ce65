package dbconnect

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RecordBackend names the service backing user records.
type RecordBackend string

const (
	// DynamoDB backs user records with a DynamoDB table.
	DynamoDB RecordBackend = "dynamodb"
	// Keyspaces backs user records with an Amazon Keyspaces (Cassandra) table.
	Keyspaces RecordBackend = "keyspaces"
)

const (
	// DefaultTableName is the users table provisioned for the DynamoDB example.
	DefaultTableName = "Users"
	// DefaultRegion is used when neither config nor AWS_REGION specify one.
	DefaultRegion = "us-east-1"
	// DefaultRedisAddress is the sample ElastiCache primary endpoint.
	DefaultRedisAddress = "my-redis-0001-001.my-redis.ygzznw.use1.cache.amazonaws.com:6379"
)

// TableConfig holds configuration for connecting to the DynamoDB users table.
type TableConfig struct {
	// Region is the AWS region, e.g. "us-east-1".
	Region string `json:"region"`
	// Endpoint overrides the service endpoint, e.g. "http://localhost:8000" for DynamoDB Local.
	Endpoint string `json:"endpoint,omitempty"`
	// AccessKeyID and SecretAccessKey, when both set, are used as static credentials.
	// Otherwise the ambient AWS credential chain applies.
	AccessKeyID     string `json:"access_key_id,omitempty"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	// TableName is the name of the users table.
	TableName string `json:"table_name"`
}

// RedisCacheConfig holds configuration for connecting to a Redis server or cluster.
type RedisCacheConfig struct {
	// Address is the host:port of the Redis server/cluster.
	Address string `json:"address"`
	// Password is the password used to authenticate.
	Password string `json:"password,omitempty"`
	// DB is the database index to select.
	DB int `json:"db"`
	// UseTLS enables in-transit encryption, required by ElastiCache clusters that have it on.
	UseTLS bool `json:"use_tls,omitempty"`
}

// KeyspacesConfig holds configuration for the Cassandra compatible users table.
type KeyspacesConfig struct {
	ClusterHosts []string `json:"cluster_hosts"`
	Keyspace     string   `json:"keyspace"`
	Username     string   `json:"username,omitempty"`
	Password     string   `json:"password,omitempty"`
	// AutoCreate creates the keyspace and users table if missing.
	AutoCreate bool `json:"auto_create,omitempty"`
	// ReplicationClause is the CQL replication map used by AutoCreate,
	// e.g. "{'class':'SingleRegionStrategy'}" for Amazon Keyspaces.
	ReplicationClause string `json:"replication_clause,omitempty"`
	// UseTLS enables TLS, required by Amazon Keyspaces (port 9142).
	UseTLS bool `json:"use_tls,omitempty"`
}

// Config is the complete configuration. DefaultConfig holds the values the example
// programs run with.
type Config struct {
	Table         TableConfig      `json:"table"`
	Cache         RedisCacheConfig `json:"cache"`
	Keyspaces     KeyspacesConfig  `json:"keyspaces"`
	RecordBackend RecordBackend    `json:"record_backend"`
	// HTTPAddress is where the REST API listens.
	HTTPAddress string `json:"http_address"`
}

// DefaultConfig returns the configuration with the sample endpoints and names.
func DefaultConfig() Config {
	return Config{
		Table: TableConfig{
			Region:    DefaultRegion,
			TableName: DefaultTableName,
		},
		Cache: RedisCacheConfig{
			Address: DefaultRedisAddress,
		},
		Keyspaces: KeyspacesConfig{
			ClusterHosts: []string{"localhost:9042"},
			Keyspace:     "users_ks",
		},
		RecordBackend: DynamoDB,
		HTTPAddress:   "localhost:8080",
	}
}

// LoadConfig returns DefaultConfig overridden by the environment variables that are set.
func LoadConfig() (Config, error) {
	c := DefaultConfig()
	return c, c.applyEnv(os.Getenv)
}

// LoadConfigFile reads a JSON config file on top of DefaultConfig, then applies
// environment overrides.
func LoadConfigFile(path string) (Config, error) {
	c := DefaultConfig()
	ba, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("couldn't read config file %s, details: %w", path, err)
	}
	if err := json.Unmarshal(ba, &c); err != nil {
		return c, fmt.Errorf("couldn't parse config file %s, details: %w", path, err)
	}
	return c, c.applyEnv(os.Getenv)
}

func (c *Config) applyEnv(getenv func(string) string) error {
	set := func(name string, target *string) {
		if v := getenv(name); v != "" {
			*target = v
		}
	}
	set("AWS_REGION", &c.Table.Region)
	set("DBCONNECT_TABLE_NAME", &c.Table.TableName)
	set("DBCONNECT_DYNAMODB_ENDPOINT", &c.Table.Endpoint)
	set("DBCONNECT_REDIS_ADDRESS", &c.Cache.Address)
	set("DBCONNECT_REDIS_PASSWORD", &c.Cache.Password)
	set("DBCONNECT_HTTP_ADDRESS", &c.HTTPAddress)

	if v := getenv("DBCONNECT_REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return NewError(ConfigurationError, "DBCONNECT_REDIS_DB", err)
		}
		c.Cache.DB = db
	}
	if v := getenv("DBCONNECT_REDIS_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return NewError(ConfigurationError, "DBCONNECT_REDIS_TLS", err)
		}
		c.Cache.UseTLS = b
	}
	if v := getenv("DBCONNECT_KEYSPACES_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return NewError(ConfigurationError, "DBCONNECT_KEYSPACES_TLS", err)
		}
		c.Keyspaces.UseTLS = b
	}
	if v := getenv("DBCONNECT_KEYSPACES_HOSTS"); v != "" {
		c.Keyspaces.ClusterHosts = strings.Split(v, ",")
	}
	if v := getenv("DBCONNECT_RECORD_BACKEND"); v != "" {
		c.RecordBackend = RecordBackend(strings.ToLower(v))
	}
	return c.Validate()
}

// Validate checks the fields every component relies upon.
func (c Config) Validate() error {
	switch c.RecordBackend {
	case DynamoDB, Keyspaces:
	default:
		return NewError(ConfigurationError, "record_backend", fmt.Errorf("unsupported record backend %q", c.RecordBackend))
	}
	if c.Cache.Address == "" {
		return NewError(ConfigurationError, "cache.address", fmt.Errorf("cache address can't be empty"))
	}
	return nil
}
