package cassandra

import (
	"crypto/tls"
	"fmt"
	log "log/slog"
	"net"
	"time"

	"github.com/gocql/gocql"

	"github.com/sharedcode/dbconnect"
)

// Config contains configuration for connecting to a Cassandra cluster (or Amazon Keyspaces)
// and the keyspace holding the users table.
type Config struct {
	// ClusterHosts lists contact points, e.g. "cassandra.us-east-1.amazonaws.com:9142".
	ClusterHosts []string
	// Keyspace holds the users table.
	Keyspace string
	// Consistency is the default consistency level for queries. Nil means LocalQuorum.
	Consistency *gocql.Consistency
	// ConnectionTimeout is the session connection timeout.
	ConnectionTimeout time.Duration
	// Authenticator is used when the cluster requires authentication.
	Authenticator gocql.Authenticator
	// ReplicationClause defines the keyspace replication. Defaults to SingleRegionStrategy
	// when TLS is on (Amazon Keyspaces), SimpleStrategy with one replica otherwise.
	ReplicationClause string
	// AutoCreate creates the keyspace and users table when missing.
	AutoCreate bool
	// SslOpts enables TLS, required by Amazon Keyspaces.
	SslOpts *gocql.SslOptions
}

// ConfigFromKeyspacesConfig converts the module config into a cassandra Config.
func ConfigFromKeyspacesConfig(c dbconnect.KeyspacesConfig) Config {
	r := Config{
		ClusterHosts:      c.ClusterHosts,
		Keyspace:          c.Keyspace,
		AutoCreate:        c.AutoCreate,
		ReplicationClause: c.ReplicationClause,
	}
	// Keyspaces only accepts TLS connections, usually on port 9142.
	if c.UseTLS {
		r.SslOpts = &gocql.SslOptions{
			Config: &tls.Config{
				MinVersion: tls.VersionTLS12,
				ServerName: serverName(c.ClusterHosts),
			},
		}
	}
	if c.Username != "" {
		r.Authenticator = gocql.PasswordAuthenticator{
			Username: c.Username,
			Password: c.Password,
		}
	}
	return r
}

// serverName returns the host part of the first contact point, for TLS verification.
func serverName(hosts []string) string {
	if len(hosts) == 0 {
		return ""
	}
	if h, _, err := net.SplitHostPort(hosts[0]); err == nil {
		return h
	}
	return hosts[0]
}

func (c *Config) applyDefaults() {
	if c.Keyspace == "" {
		c.Keyspace = "users_ks"
	}
	if c.Consistency == nil {
		// LocalQuorum is the only write consistency Keyspaces supports.
		lq := gocql.LocalQuorum
		c.Consistency = &lq
	}
	if c.ReplicationClause == "" {
		if c.SslOpts != nil {
			c.ReplicationClause = "{'class':'SingleRegionStrategy'}"
		} else {
			c.ReplicationClause = "{'class':'SimpleStrategy', 'replication_factor':1}"
		}
	}
}

func (c Config) consistency() gocql.Consistency {
	if c.Consistency == nil {
		return gocql.LocalQuorum
	}
	return *c.Consistency
}

// Connection wraps a Cassandra session and its configuration.
type Connection struct {
	Session *gocql.Session
	Config
}

// OpenConnection opens a session owned by the caller.
func OpenConnection(config Config) (*Connection, error) {
	if len(config.ClusterHosts) == 0 {
		return nil, dbconnect.NewError(dbconnect.ConfigurationError, "cluster_hosts", fmt.Errorf("cluster hosts can't be empty"))
	}
	config.applyDefaults()

	cluster := gocql.NewCluster(config.ClusterHosts...)
	cluster.Consistency = config.consistency()
	if config.ConnectionTimeout > 0 {
		cluster.ConnectTimeout = config.ConnectionTimeout
	}
	if config.Authenticator != nil {
		cluster.Authenticator = config.Authenticator
		// Don't keep credentials hanging around.
		config.Authenticator = nil
	}
	if config.SslOpts != nil {
		cluster.SslOpts = config.SslOpts
	}

	log.Debug("Opening Cassandra connection", "hosts", config.ClusterHosts, "keyspace", config.Keyspace)
	s, err := cluster.CreateSession()
	if err != nil {
		return nil, fmt.Errorf("couldn't create cassandra session, details: %w", err)
	}
	if config.AutoCreate {
		for _, stmt := range createStatements(config) {
			if err := s.Query(stmt).Exec(); err != nil {
				s.Close()
				return nil, fmt.Errorf("couldn't run %q, details: %w", stmt, err)
			}
		}
	}
	return &Connection{
		Session: s,
		Config:  config,
	}, nil
}

func createStatements(config Config) []string {
	return []string{
		fmt.Sprintf("CREATE KEYSPACE IF NOT EXISTS %s WITH REPLICATION = %s;", config.Keyspace, config.ReplicationClause),
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s.users (user_id text PRIMARY KEY, name text, email text);", config.Keyspace),
	}
}

// Close the session.
func (c *Connection) Close() {
	if c == nil || c.Session == nil {
		return
	}
	c.Session.Close()
	c.Session = nil
}
