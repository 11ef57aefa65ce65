// Package cassandra provides the user record facade over a Cassandra table, e.g. one
// hosted in Amazon Keyspaces.
package cassandra

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/gocql/gocql"

	"github.com/sharedcode/dbconnect"
)

// session is the part of *gocql.Session the record store needs.
type session interface {
	exec(ctx context.Context, stmt string, values ...any) error
	scan(ctx context.Context, stmt string, values []any, dest ...any) error
}

type gocqlSession struct {
	s           *gocql.Session
	consistency gocql.Consistency
}

func (g gocqlSession) exec(ctx context.Context, stmt string, values ...any) error {
	return g.s.Query(stmt, values...).WithContext(ctx).Consistency(g.consistency).Exec()
}

func (g gocqlSession) scan(ctx context.Context, stmt string, values []any, dest ...any) error {
	return g.s.Query(stmt, values...).WithContext(ctx).Consistency(g.consistency).Scan(dest...)
}

// RecordStore writes and reads user records of the keyspace's users table.
type RecordStore struct {
	session  session
	keyspace string
}

func NewRecordStore(conn *Connection) (*RecordStore, error) {
	if conn == nil || conn.Session == nil {
		return nil, dbconnect.NewError(dbconnect.ConfigurationError, nil, fmt.Errorf("Cassandra connection is closed, 'call OpenConnection(config) to open it"))
	}
	return &RecordStore{
		session:  gocqlSession{s: conn.Session, consistency: conn.consistency()},
		keyspace: conn.Keyspace,
	}, nil
}

// PutRecord upserts the record keyed by userID.
func (rs *RecordStore) PutRecord(ctx context.Context, userID string, name string, email string) (dbconnect.Ack, error) {
	stmt := fmt.Sprintf("INSERT INTO %s.users (user_id, name, email) VALUES(?,?,?);", rs.keyspace)
	if err := rs.session.exec(ctx, stmt, userID, name, email); err != nil {
		log.Warn("cassandra insert failed", "keyspace", rs.keyspace, "user_id", userID, "error", err)
		return dbconnect.Ack{}, dbconnect.NewError(dbconnect.RemoteWriteError, userID,
			fmt.Errorf("couldn't insert user %s, details: %w", userID, err))
	}
	return dbconnect.Ack{
		Operation: "INSERT",
		Key:       userID,
	}, nil
}

// GetRecord reads the record keyed by userID. Not found is returned as false and nil err.
func (rs *RecordStore) GetRecord(ctx context.Context, userID string) (bool, dbconnect.UserRecord, error) {
	r := dbconnect.UserRecord{UserID: userID}
	stmt := fmt.Sprintf("SELECT name, email FROM %s.users WHERE user_id = ?;", rs.keyspace)
	err := rs.session.scan(ctx, stmt, []any{userID}, &r.Name, &r.Email)
	if errors.Is(err, gocql.ErrNotFound) {
		return false, dbconnect.UserRecord{}, nil
	}
	if err != nil {
		log.Warn("cassandra select failed", "keyspace", rs.keyspace, "user_id", userID, "error", err)
		return false, dbconnect.UserRecord{}, dbconnect.NewError(dbconnect.RemoteReadError, userID,
			fmt.Errorf("couldn't select user %s, details: %w", userID, err))
	}
	return true, r, nil
}

// Ping runs a trivial query against the cluster.
func (rs *RecordStore) Ping(ctx context.Context) error {
	var v string
	if err := rs.session.scan(ctx, "SELECT release_version FROM system.local;", nil, &v); err != nil {
		return dbconnect.NewError(dbconnect.RemoteReadError, rs.keyspace, err)
	}
	return nil
}
