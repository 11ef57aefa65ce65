// Package aws_dynamodb provides the user record facade over a DynamoDB table, and table
// provisioning helpers.
package aws_dynamodb

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/sharedcode/dbconnect"
)

// KeyAttribute is the users table partition key.
const KeyAttribute = "UserId"

// TableAPI is the subset of the DynamoDB client the record facade uses.
// *dynamodb.Client satisfies it.
type TableAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// TableRecordClient writes and reads user records of one fixed table.
type TableRecordClient struct {
	api       TableAPI
	tableName string
}

func NewTableRecordClient(api TableAPI, tableName string) (*TableRecordClient, error) {
	if dbconnect.IsNil(api) {
		return nil, dbconnect.NewError(dbconnect.ConfigurationError, tableName, fmt.Errorf("dynamodb client parameter can't be nil"))
	}
	if tableName == "" {
		tableName = dbconnect.DefaultTableName
	}
	return &TableRecordClient{
		api:       api,
		tableName: tableName,
	}, nil
}

// TableName returns the name of the table this client is bound to.
func (t *TableRecordClient) TableName() string {
	return t.tableName
}

// PutRecord writes the record keyed by userID, replacing any existing one.
func (t *TableRecordClient) PutRecord(ctx context.Context, userID string, name string, email string) (dbconnect.Ack, error) {
	item, err := attributevalue.MarshalMap(dbconnect.UserRecord{
		UserID: userID,
		Name:   name,
		Email:  email,
	})
	if err != nil {
		return dbconnect.Ack{}, dbconnect.NewError(dbconnect.DecodeError, userID,
			fmt.Errorf("couldn't encode user %s, details: %w", userID, err))
	}
	out, err := t.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(t.tableName),
		Item:      item,
	})
	if err != nil {
		log.Warn("dynamodb put item failed", "table", t.tableName, "user_id", userID, "error", err)
		return dbconnect.Ack{}, dbconnect.NewError(dbconnect.RemoteWriteError, userID,
			fmt.Errorf("couldn't put user %s to table %s, details: %w", userID, t.tableName, err))
	}
	ack := dbconnect.Ack{
		Operation: "PutItem",
		Key:       userID,
	}
	if out != nil {
		ack.RequestID, _ = awsmiddleware.GetRequestIDMetadata(out.ResultMetadata)
	}
	log.Debug("dynamodb put item succeeded", "table", t.tableName, "user_id", userID, "request_id", ack.RequestID)
	return ack, nil
}

// GetRecord reads the record keyed by userID. Not found is returned as false and nil err.
func (t *TableRecordClient) GetRecord(ctx context.Context, userID string) (bool, dbconnect.UserRecord, error) {
	var r dbconnect.UserRecord
	out, err := t.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(t.tableName),
		Key: map[string]types.AttributeValue{
			KeyAttribute: &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		log.Warn("dynamodb get item failed", "table", t.tableName, "user_id", userID, "error", err)
		return false, r, dbconnect.NewError(dbconnect.RemoteReadError, userID,
			fmt.Errorf("couldn't get user %s from table %s, details: %w", userID, t.tableName, err))
	}
	if out == nil || len(out.Item) == 0 {
		log.Debug("dynamodb item not found", "table", t.tableName, "user_id", userID)
		return false, r, nil
	}
	if err := attributevalue.UnmarshalMap(out.Item, &r); err != nil {
		return false, r, dbconnect.NewError(dbconnect.DecodeError, userID,
			fmt.Errorf("couldn't decode user %s, details: %w", userID, err))
	}
	return true, r, nil
}

// Ping checks the table exists and is reachable.
func (t *TableRecordClient) Ping(ctx context.Context) error {
	if _, err := t.api.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(t.tableName),
	}); err != nil {
		return dbconnect.NewError(dbconnect.RemoteReadError, t.tableName,
			fmt.Errorf("couldn't describe table %s, details: %w", t.tableName, err))
	}
	return nil
}
