package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/affectflow/internal/clients/kafka_client"
	"github.com/spacesedan/affectflow/internal/db"
	"github.com/spacesedan/affectflow/internal/models"
	"github.com/spacesedan/affectflow/internal/search"
	"github.com/spacesedan/affectflow/internal/utils"
)

var insertBuffer = utils.NewBatchBuffer[models.AffectAnalysisResult]()

// StartResultsConsumer persists scored results: batch-writes to DynamoDB and
// bulk-indexes into OpenSearch so results are queryable by topic and affect.
func StartResultsConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			processResults(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var results []models.AffectAnalysisResult
			if err := utils.DeserializeFromJSON(msg.Value, &results); err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			for _, result := range results {
				utils.TrackMessage(result.ContentID, msg)
				insertBuffer.Add(result)
				if insertBuffer.Size() >= utils.DYNAMODB_BATCH_SIZE {
					processResults(ctx, committer)
				}
			}
		}
	}
}

func processResults(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := insertBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var insertErr error
	for i := 0; i < 3; i++ {
		insertErr = db.BatchInsertAffectResults(ctx, batch)
		if insertErr == nil {
			break
		}
		slog.Error("[ResultsConsumer] Failed to write results to DB",
			slog.String("error", insertErr.Error()),
			slog.Int("attempt", i+1))
	}

	if err := search.GetOpensearchClient(ctx).BulkIndexAffectResults(ctx, batch); err != nil {
		// DynamoDB stays the source of truth; a failed index only costs
		// searchability until the next reindex.
		slog.Warn("[ResultsConsumer] Failed to index results",
			slog.String("error", err.Error()))
	}

	for _, result := range batch {
		msg, found := utils.GetMessageForContent(result.ContentID)
		if found {
			if err := committer.Commit(msg); err != nil {
				slog.Warn("[ResultsConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
