package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/affectflow/internal/clients/kafka_client"
	"github.com/spacesedan/affectflow/internal/models"
	"github.com/spacesedan/affectflow/internal/utils"
)

var inputBatchBuffer = utils.NewBatchBuffer[models.AffectAnalysisInput]()

// StartRawContentConsumer turns raw content into cleaned analysis inputs and
// forwards them in batches to the affect-requests topic.
func StartRawContentConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[RawContentConsumer] Listening for messages...")

	ticker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[RawContentConsumer] Stopping consumer...")
			return
		case <-ticker.C:
			go sendBatchForAnalysis(ctx, committer)
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var content models.RawContent
			if err := utils.DeserializeFromJSON(msg.Value, &content); err != nil {
				continue
			}

			// strip markdown and links before anything downstream sees
			// the text
			input := utils.RawToAffectInput(content)

			utils.TrackMessage(input.ContentID, msg)

			inputBatchBuffer.Add(input)

			if inputBatchBuffer.Size() >= utils.BATCH_SIZE {
				go sendBatchForAnalysis(ctx, committer)
			}
		}
	}
}

func sendBatchForAnalysis(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := inputBatchBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_AFFECT_REQUEST, batch)
		if err == nil {
			break
		}
		slog.Warn("[RawContentConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	for _, input := range batch {
		trackedMsg, found := utils.GetMessageForContent(input.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[RawContentConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
