package aws_dynamodb

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

type mockTableState struct {
	items map[string]map[string]types.AttributeValue
	pitr  bool
}

// MockTable is an in-memory stand-in for the DynamoDB client, implementing TableAPI and
// ManageTableAPI. Setting one of the *Err fields makes the matching call fail with it,
// simulating a transport failure.
type MockTable struct {
	PutErr      error
	GetErr      error
	DescribeErr error

	mux    sync.Mutex
	tables map[string]*mockTableState
	// Calls counts API calls issued, keyed by operation name.
	Calls map[string]int
}

// NewMockTable returns a mock with the given tables already provisioned.
func NewMockTable(tableNames ...string) *MockTable {
	m := &MockTable{
		tables: make(map[string]*mockTableState),
		Calls:  make(map[string]int),
	}
	for _, n := range tableNames {
		m.tables[n] = &mockTableState{items: make(map[string]map[string]types.AttributeValue)}
	}
	return m
}

func notFound(tableName *string) error {
	return &types.ResourceNotFoundException{Message: aws.String(fmt.Sprintf("Requested resource not found: Table: %s not found", aws.ToString(tableName)))}
}

func (m *MockTable) table(tableName *string) (*mockTableState, error) {
	t, ok := m.tables[aws.ToString(tableName)]
	if !ok {
		return nil, notFound(tableName)
	}
	return t, nil
}

func keyOf(item map[string]types.AttributeValue) (string, error) {
	s, ok := item[KeyAttribute].(*types.AttributeValueMemberS)
	if !ok {
		return "", &smithy.GenericAPIError{Code: "ValidationException", Message: "One of the required keys was not given a value"}
	}
	if s.Value == "" {
		return "", &smithy.GenericAPIError{Code: "ValidationException",
			Message: "One or more parameter values are not valid. The AttributeValue for a key attribute cannot contain an empty string value. Key: " + KeyAttribute}
	}
	return s.Value, nil
}

func (m *MockTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["PutItem"]++
	if m.PutErr != nil {
		return nil, m.PutErr
	}
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := keyOf(params.Item)
	if err != nil {
		return nil, err
	}
	t.items[k] = maps.Clone(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (m *MockTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["GetItem"]++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	k, err := keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	// DynamoDB omits Item when there is no match.
	return &dynamodb.GetItemOutput{Item: maps.Clone(t.items[k])}, nil
}

// Seed stores a raw item bypassing PutItem, e.g. to plant malformed data.
func (m *MockTable) Seed(tableName string, key string, item map[string]types.AttributeValue) {
	m.mux.Lock()
	defer m.mux.Unlock()
	t, ok := m.tables[tableName]
	if !ok {
		t = &mockTableState{items: make(map[string]map[string]types.AttributeValue)}
		m.tables[tableName] = t
	}
	t.items[key] = item
}

func (m *MockTable) DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["DescribeTable"]++
	if m.DescribeErr != nil {
		return nil, m.DescribeErr
	}
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeTableOutput{
		Table: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusActive,
			ItemCount:   aws.Int64(int64(len(t.items))),
		},
	}, nil
}

func (m *MockTable) CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["CreateTable"]++
	n := aws.ToString(params.TableName)
	if _, ok := m.tables[n]; ok {
		return nil, &types.ResourceInUseException{Message: aws.String("Table already exists: " + n)}
	}
	m.tables[n] = &mockTableState{items: make(map[string]map[string]types.AttributeValue)}
	return &dynamodb.CreateTableOutput{
		TableDescription: &types.TableDescription{
			TableName:   params.TableName,
			TableStatus: types.TableStatusCreating,
			KeySchema:   params.KeySchema,
		},
	}, nil
}

func (m *MockTable) DeleteTable(ctx context.Context, params *dynamodb.DeleteTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteTableOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["DeleteTable"]++
	if _, err := m.table(params.TableName); err != nil {
		return nil, err
	}
	delete(m.tables, aws.ToString(params.TableName))
	return &dynamodb.DeleteTableOutput{}, nil
}

func (m *MockTable) UpdateContinuousBackups(ctx context.Context, params *dynamodb.UpdateContinuousBackupsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateContinuousBackupsOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["UpdateContinuousBackups"]++
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	if params.PointInTimeRecoverySpecification != nil {
		t.pitr = aws.ToBool(params.PointInTimeRecoverySpecification.PointInTimeRecoveryEnabled)
	}
	return &dynamodb.UpdateContinuousBackupsOutput{ContinuousBackupsDescription: m.backups(t)}, nil
}

func (m *MockTable) DescribeContinuousBackups(ctx context.Context, params *dynamodb.DescribeContinuousBackupsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeContinuousBackupsOutput, error) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.Calls["DescribeContinuousBackups"]++
	t, err := m.table(params.TableName)
	if err != nil {
		return nil, err
	}
	return &dynamodb.DescribeContinuousBackupsOutput{ContinuousBackupsDescription: m.backups(t)}, nil
}

func (m *MockTable) backups(t *mockTableState) *types.ContinuousBackupsDescription {
	status := types.PointInTimeRecoveryStatusDisabled
	if t.pitr {
		status = types.PointInTimeRecoveryStatusEnabled
	}
	return &types.ContinuousBackupsDescription{
		ContinuousBackupsStatus: types.ContinuousBackupsStatusEnabled,
		PointInTimeRecoveryDescription: &types.PointInTimeRecoveryDescription{
			PointInTimeRecoveryStatus: status,
		},
	}
}
