package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/jarrod-lowe/jmap-service-libs/dbclient"
)

// Key prefixes for single-table design
const (
	PKPrefixCollection = "COLLECTION#"
	SKPrefixDoc        = "DOC#"
)

// Documents is the document read/write surface used by the functions and the test harness
type Documents interface {
	Set(ctx context.Context, p Path, data map[string]any) error
	Get(ctx context.Context, p Path) (Snapshot, error)
	Delete(ctx context.Context, p Path) error
}

// DynamoDBClient defines the interface for DynamoDB operations
type DynamoDBClient interface {
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store keeps documents in a DynamoDB table
type Store struct {
	ddb       DynamoDBClient
	tableName string
	now       func() time.Time
}

// New creates a Store over an existing DynamoDB client
func New(ddb DynamoDBClient, tableName string) *Store {
	return &Store{
		ddb:       ddb,
		tableName: tableName,
		now:       time.Now,
	}
}

// NewClient creates a Store from an AWS config. The config should already
// have OTel middleware configured (e.g., from awsinit.Init).
// A non-empty endpoint routes requests to an emulator.
func NewClient(cfg aws.Config, tableName, endpoint string) *Store {
	if endpoint != "" {
		cfg.BaseEndpoint = aws.String(endpoint)
	}
	return New(dbclient.NewClient(cfg), tableName)
}

// TableName returns the backing table name
func (s *Store) TableName() string {
	return s.tableName
}

// item is the stored representation of a document
type item struct {
	PK        string         `dynamodbav:"pk"`
	SK        string         `dynamodbav:"sk"`
	Data      map[string]any `dynamodbav:"data"`
	CreatedAt string         `dynamodbav:"createdAt"`
	UpdatedAt string         `dynamodbav:"updatedAt"`
}

func keyFor(p Path) (map[string]types.AttributeValue, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"pk": PKPrefixCollection + p.Collection,
		"sk": SKPrefixDoc + p.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key: %w", err)
	}
	return key, nil
}

func pathFromKeys(pk, sk string) (Path, error) {
	collection, ok := strings.CutPrefix(pk, PKPrefixCollection)
	if !ok || collection == "" {
		return Path{}, fmt.Errorf("%w: partition key %q", ErrInvalidPath, pk)
	}
	id, ok := strings.CutPrefix(sk, SKPrefixDoc)
	if !ok || id == "" {
		return Path{}, fmt.Errorf("%w: sort key %q", ErrInvalidPath, sk)
	}
	return Path{Collection: collection, ID: id}, nil
}

// Set replaces the fields of the document at p, creating it if needed.
// createdAt is kept from the first write.
func (s *Store) Set(ctx context.Context, p Path, data map[string]any) error {
	key, err := keyFor(p)
	if err != nil {
		return err
	}
	if data == nil {
		data = map[string]any{}
	}
	now := s.now().UTC().Format(time.RFC3339Nano)

	update := expression.Set(
		expression.Name("data"),
		expression.Value(data),
	).Set(
		expression.Name("createdAt"),
		expression.IfNotExists(expression.Name("createdAt"), expression.Value(now)),
	).Set(
		expression.Name("updatedAt"),
		expression.Value(now),
	)

	expr, err := expression.NewBuilder().WithUpdate(update).Build()
	if err != nil {
		return fmt.Errorf("failed to build expression: %w", err)
	}

	_, err = s.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", p, err)
	}
	return nil
}

// Get reads the document at p. A missing document is not an error; the
// returned snapshot reports Exists() == false.
func (s *Store) Get(ctx context.Context, p Path) (Snapshot, error) {
	key, err := keyFor(p)
	if err != nil {
		return Snapshot{}, err
	}

	proj := expression.NamesList(
		expression.Name("pk"),
		expression.Name("sk"),
		expression.Name("data"),
		expression.Name("createdAt"),
		expression.Name("updatedAt"),
	)
	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to build expression: %w", err)
	}

	output, err := s.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(s.tableName),
		Key:                      key,
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to get %s: %w", p, err)
	}

	if output.Item == nil {
		return NewSnapshot(p, nil), nil
	}

	return snapshotFromItem(output.Item)
}

// Delete removes the document at p. Deleting a missing document succeeds.
func (s *Store) Delete(ctx context.Context, p Path) error {
	key, err := keyFor(p)
	if err != nil {
		return err
	}

	_, err = s.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       key,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", p, err)
	}
	return nil
}

func snapshotFromItem(av map[string]types.AttributeValue) (Snapshot, error) {
	var it item
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return Snapshot{}, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	ref, err := pathFromKeys(it.PK, it.SK)
	if err != nil {
		return Snapshot{}, err
	}

	data := it.Data
	if data == nil {
		data = map[string]any{}
	}

	snap := NewSnapshot(ref, data)
	snap.CreateTime = parseTime(it.CreatedAt)
	snap.UpdateTime = parseTime(it.UpdatedAt)
	return snap, nil
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
