package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/affectflow/config"
	"github.com/spacesedan/affectflow/internal/clients"
	"github.com/spacesedan/affectflow/internal/clients/kafka_client"
	"github.com/spacesedan/affectflow/internal/logging"
	"github.com/spacesedan/affectflow/internal/models"
	"github.com/spacesedan/affectflow/internal/utils"
)

func main() {
	inputPath := flag.String("input", "-", "JSONL file of raw content, one object per line ('-' for stdin)")
	flag.Parse()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	cfg := kafka_client.GetKafkaConfig()
	for {
		err := kafka_client.InitProducer(cfg)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		time.Sleep(5 * time.Second)
	}
	defer kafka_client.CloseProducer()

	clients.InitValkey()
	defer clients.CloseValkey()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stopChan := make(chan os.Signal, 1)
		signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
		<-stopChan
		slog.Info("Shutting down producer gracefully...")
		cancel()
	}()

	in, err := openInput(*inputPath)
	if err != nil {
		slog.Error("[Producer] Failed to open input",
			slog.String("path", *inputPath),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer in.Close()

	published, skipped := ingest(ctx, in)
	slog.Info("[Producer] Ingest complete",
		slog.Int("published", published),
		slog.Int("skipped", skipped))
}

func openInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// ingest publishes each JSONL line as raw content, skipping content IDs the
// dedupe set has already seen.
func ingest(ctx context.Context, in io.Reader) (published, skipped int) {
	valkey := clients.GetValkeyClient()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			slog.Warn("[Producer] Context cancelled, stopping ingest")
			return published, skipped
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var content models.RawContent
		if err := utils.DeserializeFromJSON(line, &content); err != nil {
			skipped++
			continue
		}
		if content.ContentID == "" || content.Text == "" {
			slog.Warn("[Producer] Skipping content without id or text")
			skipped++
			continue
		}

		if valkey.IsProcessed(ctx, content.Source, content.ContentID) {
			slog.Debug("[Producer] Content already processed, skipping",
				slog.String("content_id", content.ContentID))
			skipped++
			continue
		}

		if err := kafka_client.PublishToKafka(ctx, kafka_client.KAFKA_TOPIC_RAW_CONTENT, content); err != nil {
			slog.Error("[Producer] Failed to publish content",
				slog.String("content_id", content.ContentID),
				slog.String("error", err.Error()))
			skipped++
			continue
		}

		if err := valkey.MarkProcessed(ctx, content.Source, content.ContentID); err != nil {
			slog.Warn("[Producer] Failed to mark content as processed",
				slog.String("content_id", content.ContentID),
				slog.String("error", err.Error()))
		}
		published++
	}

	if err := scanner.Err(); err != nil {
		slog.Error("[Producer] Input read failed", slog.String("error", err.Error()))
	}
	return published, skipped
}
