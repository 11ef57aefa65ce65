package dbconnect

import (
	"os"
	"path/filepath"
	"testing"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Table.TableName != "Users" {
		t.Errorf("table name got %q", c.Table.TableName)
	}
	if c.Cache.Address != "my-redis-0001-001.my-redis.ygzznw.use1.cache.amazonaws.com:6379" {
		t.Errorf("cache address got %q", c.Cache.Address)
	}
	if c.RecordBackend != DynamoDB {
		t.Errorf("record backend got %q", c.RecordBackend)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("default config should be valid, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	c := DefaultConfig()
	err := c.applyEnv(envOf(map[string]string{
		"AWS_REGION":                  "eu-west-1",
		"DBCONNECT_TABLE_NAME":        "People",
		"DBCONNECT_DYNAMODB_ENDPOINT": "http://localhost:8000",
		"DBCONNECT_REDIS_ADDRESS":     "localhost:6379",
		"DBCONNECT_REDIS_DB":          "2",
		"DBCONNECT_REDIS_TLS":         "true",
		"DBCONNECT_KEYSPACES_HOSTS":   "h1:9142,h2:9142",
		"DBCONNECT_KEYSPACES_TLS":     "true",
		"DBCONNECT_RECORD_BACKEND":    "Keyspaces",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if c.Table.Region != "eu-west-1" || c.Table.TableName != "People" || c.Table.Endpoint != "http://localhost:8000" {
		t.Errorf("table config not overridden: %+v", c.Table)
	}
	if c.Cache.Address != "localhost:6379" || c.Cache.DB != 2 || !c.Cache.UseTLS {
		t.Errorf("cache config not overridden: %+v", c.Cache)
	}
	if len(c.Keyspaces.ClusterHosts) != 2 || c.Keyspaces.ClusterHosts[1] != "h2:9142" {
		t.Errorf("keyspaces hosts got %v", c.Keyspaces.ClusterHosts)
	}
	if !c.Keyspaces.UseTLS {
		t.Error("keyspaces TLS not overridden")
	}
	if c.RecordBackend != Keyspaces {
		t.Errorf("record backend got %q", c.RecordBackend)
	}
}

func TestApplyEnvInvalid(t *testing.T) {
	cases := map[string]map[string]string{
		"bad db":      {"DBCONNECT_REDIS_DB": "zero"},
		"bad tls":     {"DBCONNECT_REDIS_TLS": "maybe"},
		"bad ks tls":  {"DBCONNECT_KEYSPACES_TLS": "yes please"},
		"bad backend": {"DBCONNECT_RECORD_BACKEND": "mongo"},
	}
	for name, env := range cases {
		c := DefaultConfig()
		err := c.applyEnv(envOf(env))
		if CodeOf(err) != ConfigurationError {
			t.Errorf("%s: expected ConfigurationError, got %v", name, err)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	body := `{"table":{"region":"ap-northeast-2","table_name":"Members"},"cache":{"address":"cache:6379","db":1}}`
	if err := os.WriteFile(p, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfigFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Table.TableName != "Members" || c.Cache.Address != "cache:6379" || c.Cache.DB != 1 {
		t.Errorf("file values not applied: %+v", c)
	}
	// Untouched sections keep their defaults.
	if c.RecordBackend != DynamoDB || c.HTTPAddress != "localhost:8080" {
		t.Errorf("defaults lost: %+v", c)
	}

	if _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
