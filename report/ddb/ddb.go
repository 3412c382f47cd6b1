// Package ddb mirrors evaluation runs to a DynamoDB run ledger, so runs
// from many machines land in one queryable table.
//
// Table schema:
//   - Partition key: run_id (string)
//   - Sort key: item_id (string) - the question ID, or "_summary" for
//     the run summary
//
// Create table with:
//
//	aws dynamodb create-table \
//	  --table-name ragmark-runs \
//	  --attribute-definitions AttributeName=run_id,AttributeType=S AttributeName=item_id,AttributeType=S \
//	  --key-schema AttributeName=run_id,KeyType=HASH AttributeName=item_id,KeyType=RANGE \
//	  --billing-mode PAY_PER_REQUEST
package ddb

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/hupe1980/ragmark/codec"
	"github.com/hupe1980/ragmark/report"
)

// summaryItemID is the sort key reserved for the run summary.
const summaryItemID = "_summary"

// Client is the interface for DynamoDB operations.
type Client interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

// ErrRunExists is returned when a run ID has already been published.
var ErrRunExists = errors.New("run already recorded")

// Sink publishes run records and summaries to DynamoDB.
type Sink struct {
	client Client
	table  string
}

// NewSink creates a new DynamoDB run sink.
func NewSink(client Client, table string) *Sink {
	return &Sink{
		client: client,
		table:  table,
	}
}

// Publish writes the run summary and all records. The summary is
// written first with a conditional put, so a duplicate run ID fails
// before any record lands.
func (s *Sink) Publish(ctx context.Context, summary report.Summary, records []report.Record) error {
	if summary.RunID == "" {
		return errors.New("summary has no run id")
	}

	if err := s.putSummary(ctx, summary); err != nil {
		return err
	}

	for _, rec := range records {
		if err := s.putRecord(ctx, summary.RunID, rec); err != nil {
			return fmt.Errorf("put record %q: %w", rec.ID, err)
		}
	}

	return nil
}

func (s *Sink) putSummary(ctx context.Context, summary report.Summary) error {
	payload, err := codec.Default.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"run_id":    &types.AttributeValueMemberS{Value: summary.RunID},
			"item_id":   &types.AttributeValueMemberS{Value: summaryItemID},
			"items":     &types.AttributeValueMemberN{Value: strconv.Itoa(summary.Items)},
			"errors":    &types.AttributeValueMemberN{Value: strconv.Itoa(summary.Errors)},
			"avg_score": &types.AttributeValueMemberN{Value: formatFloat(summary.AvgScore)},
			"payload":   &types.AttributeValueMemberS{Value: string(payload)},
		},
		ConditionExpression: aws.String("attribute_not_exists(run_id)"),
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return fmt.Errorf("%w: %s", ErrRunExists, summary.RunID)
		}
		return fmt.Errorf("put summary: %w", err)
	}

	return nil
}

func (s *Sink) putRecord(ctx context.Context, runID string, rec report.Record) error {
	payload, err := codec.Default.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item: map[string]types.AttributeValue{
			"run_id":  &types.AttributeValueMemberS{Value: runID},
			"item_id": &types.AttributeValueMemberS{Value: rec.ID},
			"score":   &types.AttributeValueMemberN{Value: formatFloat(rec.Score)},
			"payload": &types.AttributeValueMemberS{Value: string(payload)},
		},
	})
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
