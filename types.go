package dbconnect

import (
	"context"
	"fmt"
	"reflect"
)

// UserRecord is the item stored in the users table, keyed by UserID.
type UserRecord struct {
	UserID string `json:"UserId" dynamodbav:"UserId"`
	Name   string `json:"Name" dynamodbav:"Name"`
	Email  string `json:"Email" dynamodbav:"Email"`
}

// CacheEntry is a single key/value pair held in the cache.
type CacheEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Ack acknowledges a successful write. It carries nothing the caller needs to act on,
// it is meant for logging.
type Ack struct {
	Operation string `json:"operation"`
	Key       string `json:"key"`
	// Status is the service's reply status, e.g. "OK" from Redis SET.
	Status string `json:"status,omitempty"`
	// RequestID is the service assigned request id, when the service returns one.
	RequestID string `json:"request_id,omitempty"`
}

func (a Ack) String() string {
	s := fmt.Sprintf("%s %s", a.Operation, a.Key)
	if a.Status != "" {
		s += " status=" + a.Status
	}
	if a.RequestID != "" {
		s += " request_id=" + a.RequestID
	}
	return s
}

// RecordStore specifies single-item write and point read of user records.
type RecordStore interface {
	// PutRecord writes (or overwrites) the record keyed by userID.
	PutRecord(ctx context.Context, userID string, name string, email string) (Ack, error)
	// GetRecord fetches the record keyed by userID. Returns false and nil error if not found.
	GetRecord(ctx context.Context, userID string) (bool, UserRecord, error)
	// Ping tests connectivity to the backing table.
	Ping(ctx context.Context) error
}

// Cache specifies set and get of string values by key.
type Cache interface {
	// SetValue overwrites the value of key, no expiration is set.
	SetValue(ctx context.Context, key string, value string) (Ack, error)
	// GetValue returns the value of key. Returns false and nil error if key is not set.
	GetValue(ctx context.Context, key string) (bool, string, error)
	// Ping tests connectivity to the cache endpoint.
	Ping(ctx context.Context) error
}

// IsNil reports whether v is nil, including a nil pointer (or map, slice, func, chan)
// held in a non nil interface.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
