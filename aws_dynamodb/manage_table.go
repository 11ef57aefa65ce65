package aws_dynamodb

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ManageTableAPI is the subset of the DynamoDB client used for provisioning.
// *dynamodb.Client satisfies it.
type ManageTableAPI interface {
	dynamodb.DescribeTableAPIClient
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error)
	UpdateContinuousBackups(ctx context.Context, params *dynamodb.UpdateContinuousBackupsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateContinuousBackupsOutput, error)
	DescribeContinuousBackups(ctx context.Context, params *dynamodb.DescribeContinuousBackupsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeContinuousBackupsOutput, error)
}

// ManageTable provisions the users table: create, point-in-time recovery, removal.
type ManageTable struct {
	api ManageTableAPI
}

func NewManageTable(api ManageTableAPI) (*ManageTable, error) {
	if api == nil {
		return nil, fmt.Errorf("dynamodb client parameter can't be nil")
	}
	return &ManageTable{
		api: api,
	}, nil
}

// CreateTable creates an on-demand table keyed by UserId. An existing table is not an error.
// If maxWait > 0, waits up to maxWait for the table to become ACTIVE.
func (mt *ManageTable) CreateTable(ctx context.Context, tableName string, maxWait time.Duration) error {
	_, err := mt.api.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(tableName),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(KeyAttribute), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(KeyAttribute), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return fmt.Errorf("couldn't create table %s, details: %w", tableName, err)
		}
		log.Info("dynamodb table already exists", "table", tableName)
	}
	if maxWait <= 0 {
		return nil
	}
	w := dynamodb.NewTableExistsWaiter(mt.api)
	if err := w.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, maxWait); err != nil {
		return fmt.Errorf("table %s did not become active, details: %w", tableName, err)
	}
	return nil
}

// EnablePointInTimeRecovery turns on continuous backups for the table.
func (mt *ManageTable) EnablePointInTimeRecovery(ctx context.Context, tableName string) error {
	_, err := mt.api.UpdateContinuousBackups(ctx, &dynamodb.UpdateContinuousBackupsInput{
		TableName: aws.String(tableName),
		PointInTimeRecoverySpecification: &types.PointInTimeRecoverySpecification{
			PointInTimeRecoveryEnabled: aws.Bool(true),
		},
	})
	if err != nil {
		return fmt.Errorf("couldn't enable point in time recovery on table %s, details: %w", tableName, err)
	}
	return nil
}

// PointInTimeRecoveryEnabled reports whether continuous backups are on for the table.
func (mt *ManageTable) PointInTimeRecoveryEnabled(ctx context.Context, tableName string) (bool, error) {
	out, err := mt.api.DescribeContinuousBackups(ctx, &dynamodb.DescribeContinuousBackupsInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return false, fmt.Errorf("couldn't describe continuous backups of table %s, details: %w", tableName, err)
	}
	if out.ContinuousBackupsDescription == nil || out.ContinuousBackupsDescription.PointInTimeRecoveryDescription == nil {
		return false, nil
	}
	return out.ContinuousBackupsDescription.PointInTimeRecoveryDescription.PointInTimeRecoveryStatus == types.PointInTimeRecoveryStatusEnabled, nil
}

// RemoveTable deletes the table.
func (mt *ManageTable) RemoveTable(ctx context.Context, tableName string) error {
	_, err := mt.api.DeleteTable(ctx, &dynamodb.DeleteTableInput{
		TableName: aws.String(tableName),
	})
	if err != nil {
		return fmt.Errorf("couldn't remove table %s, details: %w", tableName, err)
	}
	return nil
}
