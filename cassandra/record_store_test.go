package cassandra

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocql/gocql"

	"github.com/sharedcode/dbconnect"
)

// fakeSession keeps users in a map, understanding only the statements RecordStore issues.
type fakeSession struct {
	users map[string][2]string
	err   error
	stmts []string
}

func newFakeSession() *fakeSession {
	return &fakeSession{users: make(map[string][2]string)}
}

func (f *fakeSession) exec(ctx context.Context, stmt string, values ...any) error {
	f.stmts = append(f.stmts, stmt)
	if f.err != nil {
		return f.err
	}
	f.users[values[0].(string)] = [2]string{values[1].(string), values[2].(string)}
	return nil
}

func (f *fakeSession) scan(ctx context.Context, stmt string, values []any, dest ...any) error {
	f.stmts = append(f.stmts, stmt)
	if f.err != nil {
		return f.err
	}
	if strings.Contains(stmt, "system.local") {
		*dest[0].(*string) = "3.11.2"
		return nil
	}
	u, ok := f.users[values[0].(string)]
	if !ok {
		return gocql.ErrNotFound
	}
	*dest[0].(*string) = u[0]
	*dest[1].(*string) = u[1]
	return nil
}

func newFakeStore() (*fakeSession, *RecordStore) {
	f := newFakeSession()
	return f, &RecordStore{session: f, keyspace: "users_ks"}
}

func TestPutThenGetRecord(t *testing.T) {
	f, rs := newFakeStore()
	ctx := context.Background()
	if _, err := rs.PutRecord(ctx, "user1", "John Doe", "john.doe@example.com"); err != nil {
		t.Fatalf("PutRecord failed: %v", err)
	}
	found, r, err := rs.GetRecord(ctx, "user1")
	if err != nil || !found {
		t.Fatalf("GetRecord got found=%v err=%v", found, err)
	}
	want := dbconnect.UserRecord{UserID: "user1", Name: "John Doe", Email: "john.doe@example.com"}
	if r != want {
		t.Errorf("got %+v want %+v", r, want)
	}
	if !strings.HasPrefix(f.stmts[0], "INSERT INTO users_ks.users") {
		t.Errorf("unexpected statement %q", f.stmts[0])
	}
}

func TestGetRecordNotFound(t *testing.T) {
	_, rs := newFakeStore()
	found, r, err := rs.GetRecord(context.Background(), "nonexistent-id")
	if err != nil || found || r != (dbconnect.UserRecord{}) {
		t.Errorf("expected not found, got found=%v record=%+v err=%v", found, r, err)
	}
}

func TestInjectedFailures(t *testing.T) {
	cause := errors.New("simulated network failure")
	f, rs := newFakeStore()
	f.err = cause
	ctx := context.Background()
	if _, err := rs.PutRecord(ctx, "user1", "n", "e"); !dbconnect.IsRemoteWriteError(err) || !errors.Is(err, cause) {
		t.Errorf("PutRecord got %v", err)
	}
	if _, _, err := rs.GetRecord(ctx, "user1"); !dbconnect.IsRemoteReadError(err) {
		t.Errorf("GetRecord got %v", err)
	}
	if err := rs.Ping(ctx); !dbconnect.IsRemoteReadError(err) {
		t.Errorf("Ping got %v", err)
	}
}

func TestNewRecordStoreClosedConnection(t *testing.T) {
	if _, err := NewRecordStore(nil); dbconnect.CodeOf(err) != dbconnect.ConfigurationError {
		t.Errorf("expected ConfigurationError, got %v", err)
	}
	if _, err := OpenConnection(Config{}); dbconnect.CodeOf(err) != dbconnect.ConfigurationError {
		t.Errorf("expected ConfigurationError for empty hosts, got %v", err)
	}
}

func TestConfigDefaultsAndStatements(t *testing.T) {
	c := ConfigFromKeyspacesConfig(dbconnect.KeyspacesConfig{
		ClusterHosts: []string{"h:9142"},
		Username:     "svc",
		Password:     "pw",
	})
	if c.Authenticator == nil {
		t.Error("expected password authenticator")
	}
	c.applyDefaults()
	if c.Keyspace != "users_ks" || c.Consistency == nil || *c.Consistency != gocql.LocalQuorum {
		t.Errorf("unexpected defaults %+v", c)
	}
	if c.SslOpts != nil || !strings.Contains(c.ReplicationClause, "SimpleStrategy") {
		t.Errorf("plain Cassandra expected, got ssl=%v replication=%q", c.SslOpts, c.ReplicationClause)
	}
	stmts := createStatements(c)
	if !strings.Contains(stmts[0], "CREATE KEYSPACE IF NOT EXISTS users_ks") ||
		!strings.Contains(stmts[1], "users_ks.users (user_id text PRIMARY KEY") {
		t.Errorf("unexpected create statements %v", stmts)
	}
}

func TestKeyspacesTLSFromConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{"record_backend":"keyspaces","keyspaces":{"cluster_hosts":["cassandra.us-east-1.amazonaws.com:9142"],"keyspace":"users_ks","use_tls":true}}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := dbconnect.LoadConfigFile(p)
	if err != nil {
		t.Fatal(err)
	}
	c := ConfigFromKeyspacesConfig(cfg.Keyspaces)
	c.applyDefaults()
	if c.SslOpts == nil || c.SslOpts.Config == nil {
		t.Fatal("expected TLS options for Keyspaces")
	}
	if c.SslOpts.Config.ServerName != "cassandra.us-east-1.amazonaws.com" {
		t.Errorf("server name got %q", c.SslOpts.Config.ServerName)
	}
	if c.ReplicationClause != "{'class':'SingleRegionStrategy'}" {
		t.Errorf("replication got %q", c.ReplicationClause)
	}
}

func TestExplicitReplicationAndConsistency(t *testing.T) {
	c := ConfigFromKeyspacesConfig(dbconnect.KeyspacesConfig{
		ClusterHosts:      []string{"h1", "h2"},
		ReplicationClause: "{'class':'NetworkTopologyStrategy', 'dc1':3}",
		UseTLS:            true,
	})
	anyLevel := gocql.Any
	c.Consistency = &anyLevel
	c.applyDefaults()
	if *c.Consistency != gocql.Any || c.consistency() != gocql.Any {
		t.Errorf("explicit consistency overridden, got %v", *c.Consistency)
	}
	if !strings.Contains(createStatements(c)[0], "NetworkTopologyStrategy") {
		t.Errorf("replication clause not used: %v", createStatements(c)[0])
	}
	if c.SslOpts.Config.ServerName != "h1" {
		t.Errorf("server name got %q", c.SslOpts.Config.ServerName)
	}
	if (Config{}).consistency() != gocql.LocalQuorum {
		t.Error("nil consistency should mean LocalQuorum")
	}
}

// Runs against a live cluster only when CASSANDRA_HOSTS is set, e.g. "localhost:9042".
func TestLiveRoundTrip(t *testing.T) {
	hosts := os.Getenv("CASSANDRA_HOSTS")
	if hosts == "" {
		t.Skip("CASSANDRA_HOSTS not set")
	}
	conn, err := OpenConnection(Config{ClusterHosts: strings.Split(hosts, ","), AutoCreate: true})
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	rs, _ := NewRecordStore(conn)
	ctx := context.Background()
	if _, err := rs.PutRecord(ctx, "user1", "John Doe", "john.doe@example.com"); err != nil {
		t.Fatal(err)
	}
	if found, r, err := rs.GetRecord(ctx, "user1"); err != nil || !found || r.Email != "john.doe@example.com" {
		t.Errorf("got found=%v record=%+v err=%v", found, r, err)
	}
}
