package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/spacesedan/affectflow/internal/clients"
	"github.com/spacesedan/affectflow/internal/models"
)

const AFFECT_RESULTS_TABLE_NAME = "AffectResults"

const maxBatchSize = 25

var dbClient *dynamodb.Client

func InitDynamoDB() {
	dbClient = clients.GetDynamoDBClient()
}

// BatchInsertAffectResults writes a batch of analysis results, retrying
// unprocessed items with exponential backoff the way DynamoDB expects.
func BatchInsertAffectResults(ctx context.Context, results []models.AffectAnalysisResult) error {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	for i := 0; i < len(results); i += maxBatchSize {
		select {
		case <-ctx.Done():
			slog.Warn("[DynamoDB] context canceled")
			return ctx.Err()
		default:
			end := i + maxBatchSize
			if end > len(results) {
				end = len(results)
			}

			writeRequests := make([]types.WriteRequest, 0, maxBatchSize)
			for _, result := range results[i:end] {
				writeRequests = append(writeRequests, types.WriteRequest{
					PutRequest: &types.PutRequest{
						Item: ResultToDynamoDBItem(result),
					},
				})
			}

			out, err := dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
				RequestItems: map[string][]types.WriteRequest{
					AFFECT_RESULTS_TABLE_NAME: writeRequests,
				},
			})
			if err != nil {
				return fmt.Errorf("[DynamoDB] Failed to batch write affect results: %w", err)
			}

			retryCount := 0
			backoff := 500 * time.Millisecond
			for len(out.UnprocessedItems) > 0 && retryCount < 3 {
				time.Sleep(backoff)
				backoff *= 2

				slog.Warn("[DynamoDB] Retrying unprocessed affect results...",
					slog.Int("attempt", retryCount+1),
					slog.Int("remaining", len(out.UnprocessedItems[AFFECT_RESULTS_TABLE_NAME])))

				out, err = dbClient.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
					RequestItems: out.UnprocessedItems,
				})
				if err != nil {
					return fmt.Errorf("[DynamoDB] Retry error %w", err)
				}

				retryCount++
			}

			if len(out.UnprocessedItems) > 0 {
				slog.Error("[DynamoDB] Some affect results failed after retries",
					slog.Int("remaining", len(out.UnprocessedItems[AFFECT_RESULTS_TABLE_NAME])))
			}
		}
	}

	slog.Info("[DynamoDB] Successfully stored affect results",
		slog.Int("count", len(results)))
	return nil
}

// GetAllAffectResults scans the full results table page by page.
func GetAllAffectResults(ctx context.Context) ([]models.AffectAnalysisResult, error) {
	if dbClient == nil {
		dbClient = clients.GetDynamoDBClient()
	}

	var results []models.AffectAnalysisResult
	input := &dynamodb.ScanInput{
		TableName: aws.String(AFFECT_RESULTS_TABLE_NAME),
	}

	paginator := dynamodb.NewScanPaginator(dbClient, input)

	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("[DynamoDB] Scan for affect results failed: %w", err)
		}
		var page []models.AffectAnalysisResult
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			slog.Error("[DynamoDB] Unable to unmarshal affect result page",
				slog.String("error", err.Error()))
			return nil, err
		}
		results = append(results, page...)
	}

	slog.Info("[DynamoDB] Successfully retrieved affect results",
		slog.Int("count", len(results)))
	return results, nil
}

func ResultToDynamoDBItem(result models.AffectAnalysisResult) map[string]types.AttributeValue {
	item := make(map[string]types.AttributeValue)

	item["content_id"] = &types.AttributeValueMemberS{Value: result.ContentID}
	item["source"] = &types.AttributeValueMemberS{Value: result.Source}
	item["word_count"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", result.WordCount)}
	item["vader_score"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", result.VaderScore)}
	item["vader_label"] = &types.AttributeValueMemberS{Value: result.VaderLabel}
	item["created_at"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Unix())}
	item["ttl"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", time.Now().Add(24*time.Hour).Unix())}

	rawCounts := make(map[string]types.AttributeValue, len(result.RawCounts))
	for label, count := range result.RawCounts {
		rawCounts[string(label)] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", count)}
	}
	item["raw_counts"] = &types.AttributeValueMemberM{Value: rawCounts}

	frequencies := make(map[string]types.AttributeValue, len(result.Frequencies))
	for label, freq := range result.Frequencies {
		frequencies[string(label)] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%f", freq)}
	}
	item["frequencies"] = &types.AttributeValueMemberM{Value: frequencies}

	if len(result.TopAffects) > 0 {
		top := make([]types.AttributeValue, 0, len(result.TopAffects))
		for _, label := range result.TopAffects {
			top = append(top, &types.AttributeValueMemberS{Value: string(label)})
		}
		item["top_affects"] = &types.AttributeValueMemberL{Value: top}
	}

	if result.Topic != "" {
		item["topic"] = &types.AttributeValueMemberS{Value: result.Topic}
	}
	if result.Text != "" {
		item["text"] = &types.AttributeValueMemberS{Value: result.Text}
	}
	if result.OriginalText != "" {
		item["original_text"] = &types.AttributeValueMemberS{Value: result.OriginalText}
	}
	if result.WasCleaned {
		item["was_cleaned"] = &types.AttributeValueMemberBOOL{Value: true}
	}

	metadata := make(map[string]types.AttributeValue)
	if result.Metadata.Author != "" {
		metadata["author"] = &types.AttributeValueMemberS{Value: result.Metadata.Author}
	}
	if result.Metadata.Language != "" {
		metadata["language"] = &types.AttributeValueMemberS{Value: result.Metadata.Language}
	}
	if result.Metadata.URL != "" {
		metadata["url"] = &types.AttributeValueMemberS{Value: result.Metadata.URL}
	}
	if !result.Metadata.Timestamp.IsZero() {
		metadata["timestamp"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", result.Metadata.Timestamp.Unix())}
	}
	if len(metadata) > 0 {
		item["metadata"] = &types.AttributeValueMemberM{Value: metadata}
	}

	return item
}
