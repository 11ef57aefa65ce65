package main

import (
	"context"
	"fmt"

	"github.com/sharedcode/dbconnect"
	"github.com/sharedcode/dbconnect/aws_dynamodb"
	"github.com/sharedcode/dbconnect/cassandra"
)

// newRecordStore opens the record store cfg.RecordBackend names. The returned func
// releases it.
func newRecordStore(ctx context.Context, cfg dbconnect.Config) (dbconnect.RecordStore, func(), error) {
	switch cfg.RecordBackend {
	case dbconnect.Keyspaces:
		conn, err := cassandra.OpenConnection(cassandra.ConfigFromKeyspacesConfig(cfg.Keyspaces))
		if err != nil {
			return nil, nil, err
		}
		rs, err := cassandra.NewRecordStore(conn)
		if err != nil {
			conn.Close()
			return nil, nil, err
		}
		return rs, conn.Close, nil
	case dbconnect.DynamoDB:
		client, err := aws_dynamodb.Connect(ctx, aws_dynamodb.ConfigFromTableConfig(cfg.Table))
		if err != nil {
			return nil, nil, err
		}
		rs, err := aws_dynamodb.NewTableRecordClient(client, cfg.Table.TableName)
		if err != nil {
			return nil, nil, err
		}
		return rs, func() {}, nil
	}
	return nil, nil, dbconnect.NewError(dbconnect.ConfigurationError, "record_backend",
		fmt.Errorf("unsupported record backend %q", cfg.RecordBackend))
}
