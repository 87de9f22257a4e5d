package consumers

import (
	"context"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/affectflow/internal/affect"
	"github.com/spacesedan/affectflow/internal/clients/kafka_client"
	"github.com/spacesedan/affectflow/internal/models"
	"github.com/spacesedan/affectflow/internal/sentiment"
	"github.com/spacesedan/affectflow/internal/utils"
)

var (
	analyzer     *affect.Analyzer
	resultBuffer = utils.NewBatchBuffer[models.AffectAnalysisResult]()
)

// InitAffectAnalyzer installs the shared analyzer used by the analysis
// consumer. Must be called before StartAffectAnalysisConsumer.
func InitAffectAnalyzer(a *affect.Analyzer) {
	analyzer = a
}

// StartAffectAnalysisConsumer scores batches of cleaned inputs and publishes
// the results for storage.
func StartAffectAnalysisConsumer(ctx context.Context, consumer *kafka.Consumer) {
	if analyzer == nil {
		slog.Error("[AffectAnalysisConsumer] Analyzer not initialized, refusing to start")
		return
	}

	iterator := kafka_client.NewKafkaMessageIterator(ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer)

	slog.Info("[AffectAnalysisConsumer] Listening for messages...")

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[AffectAnalysisConsumer] Consumer shutting down...")
			return
		default:
			msg, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				continue
			}

			var inputs []models.AffectAnalysisInput
			if err := utils.DeserializeFromJSON(msg.Value, &inputs); err != nil {
				utils.HandleConsumerError(err)
				continue
			}
			if len(inputs) == 0 {
				continue
			}

			utils.TrackMessage(inputs[0].ContentID, msg)

			for _, input := range inputs {
				resultBuffer.Add(scoreInput(input))
			}

			sendResultsForStorage(ctx, committer)
		}
	}
}

// scoreInput runs both analyzers over one text. Scoring never fails; an
// unmatched or empty text just produces a zero-filled distribution.
func scoreInput(input models.AffectAnalysisInput) models.AffectAnalysisResult {
	res := analyzer.Analyze(input.Text)
	vaderScore, vaderLabel := sentiment.ScoreWithVADER(input.Text)

	return models.AffectAnalysisResult{
		AffectAnalysisInput: input,
		WordCount:           res.WordCount,
		RawCounts:           res.RawCounts,
		Frequencies:         res.Frequencies,
		TopAffects:          res.TopAffects(),
		VaderScore:          vaderScore,
		VaderLabel:          vaderLabel,
		AnalyzedAt:          time.Now().UTC(),
	}
}

func sendResultsForStorage(ctx context.Context, committer *kafka_client.KafkaCommitHandler) {
	batch := resultBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	for i := 0; i < 3; i++ {
		err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_AFFECT_RESULTS, batch)
		if err == nil {
			break
		}
		slog.Warn("[AffectAnalysisConsumer] Batch publishing failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}

	for _, result := range batch {
		trackedMsg, found := utils.GetMessageForContent(result.ContentID)
		if found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[AffectAnalysisConsumer] Failed to commit offset",
					slog.String("error", err.Error()))
			}
		}
	}
}
