// Package dynamodb implements the key-value store adapter on a single
// DynamoDB table. Records share one physical table under a composite
// partition/sort key scheme; a GSI keyed on the sort key serves lookups
// by id independent of the partition.
package dynamodb

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"wishlist-backend/application/ports"
	apperrors "wishlist-backend/pkg/errors"
)

// Attribute names of the table's composite key.
const (
	attrPK = "pk"
	attrSK = "sk"
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
// Narrowing the dependency lets tests substitute an in-memory table.
type DynamoDBAPI interface {
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// Store implements ports.KVStore against DynamoDB. No retries: a
// transient failure propagates to the caller as a store error.
type Store struct {
	client    DynamoDBAPI
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewStore creates a new Store
func NewStore(client DynamoDBAPI, tableName, indexName string, logger *zap.Logger) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// Query returns every record in the partition whose sort key begins with
// the given prefix, following pagination until the result is exhausted.
func (s *Store) Query(ctx context.Context, pk, skPrefix string) ([]ports.Record, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		KeyConditionExpression: aws.String("pk = :pk AND begins_with(sk, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: pk},
			":prefix": &types.AttributeValueMemberS{Value: skPrefix},
		},
	}

	records := make([]ports.Record, 0)
	for {
		result, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, s.wrapErr("query", err)
		}

		for _, item := range result.Items {
			rec, err := unmarshalRecord(item)
			if err != nil {
				return nil, apperrors.NewStoreError("query", err)
			}
			records = append(records, rec)
		}

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return records, nil
}

// QueryByID resolves a record by sort key alone via the GSI. Returns nil
// when no record matches; a duplicate (should never happen, ids are
// random) resolves to the first match.
func (s *Store) QueryByID(ctx context.Context, sk string) (*ports.Record, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(s.indexName),
		KeyConditionExpression: aws.String("sk = :sk"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":sk": &types.AttributeValueMemberS{Value: sk},
		},
		Limit: aws.Int32(1),
	}

	result, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, s.wrapErr("query by id", err)
	}
	if len(result.Items) == 0 {
		return nil, nil
	}

	rec, err := unmarshalRecord(result.Items[0])
	if err != nil {
		return nil, apperrors.NewStoreError("query by id", err)
	}
	return &rec, nil
}

// Put writes a full record, overwriting any existing record with the
// same key.
func (s *Store) Put(ctx context.Context, rec ports.Record) error {
	item := make(map[string]string, len(rec.Attributes)+2)
	for k, v := range rec.Attributes {
		item[k] = v
	}
	item[attrPK] = rec.PK
	item[attrSK] = rec.SK

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return apperrors.NewStoreError("put", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		return s.wrapErr("put", err)
	}

	return nil
}

// UpdateAttributes applies a partial update: a non-nil value sets the
// attribute, nil removes it. The record must already exist; a missing
// key fails the condition and surfaces as not-found rather than quietly
// writing a phantom record.
func (s *Store) UpdateAttributes(ctx context.Context, key ports.Key, updates map[string]*string) (*ports.Record, error) {
	var update expression.UpdateBuilder
	for attr, value := range updates {
		if value != nil {
			update = update.Set(expression.Name(attr), expression.Value(*value))
		} else {
			update = update.Remove(expression.Name(attr))
		}
	}

	cond := expression.AttributeExists(expression.Name(attrSK))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(cond).
		Build()
	if err != nil {
		return nil, apperrors.NewStoreError("update", err)
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: key.PK},
			attrSK: &types.AttributeValueMemberS{Value: key.SK},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.client.UpdateItem(ctx, input)
	if err != nil {
		return nil, s.wrapErr("update", err)
	}

	rec, err := unmarshalRecord(result.Attributes)
	if err != nil {
		return nil, apperrors.NewStoreError("update", err)
	}
	return &rec, nil
}

// Delete removes a record by key. Deleting an absent key is not an
// error.
func (s *Store) Delete(ctx context.Context, key ports.Key) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			attrPK: &types.AttributeValueMemberS{Value: key.PK},
			attrSK: &types.AttributeValueMemberS{Value: key.SK},
		},
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		return s.wrapErr("delete", err)
	}

	return nil
}

// wrapErr maps transport failures onto the error taxonomy.
func (s *Store) wrapErr(operation string, err error) error {
	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return apperrors.NewNotFoundError("record")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("store operation timed out", zap.String("operation", operation))
		return apperrors.NewTimeoutError("store " + operation)
	}

	s.logger.Error("store operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	return apperrors.NewStoreError("store "+operation, err)
}

// unmarshalRecord converts a raw item into a Record, splitting the
// composite key out of the attribute map.
func unmarshalRecord(item map[string]types.AttributeValue) (ports.Record, error) {
	attrs := make(map[string]string, len(item))
	if err := attributevalue.UnmarshalMap(item, &attrs); err != nil {
		return ports.Record{}, err
	}

	rec := ports.Record{
		PK:         attrs[attrPK],
		SK:         attrs[attrSK],
		Attributes: attrs,
	}
	delete(attrs, attrPK)
	delete(attrs, attrSK)
	return rec, nil
}
