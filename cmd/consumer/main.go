package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spacesedan/affectflow/config"
	"github.com/spacesedan/affectflow/internal/affect"
	"github.com/spacesedan/affectflow/internal/clients/kafka_client"
	"github.com/spacesedan/affectflow/internal/consumers"
	"github.com/spacesedan/affectflow/internal/db"
	"github.com/spacesedan/affectflow/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		stopChan := make(chan os.Signal, 1)
		signal.Notify(stopChan, os.Interrupt, syscall.SIGTERM)
		<-stopChan
		slog.Info("Shutting down consumer gracefully...")
		cancel()
	}()

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

	analyzer, err := buildAnalyzer(ctx)
	if err != nil {
		slog.Error("[Main] Failed to build analyzer",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	consumers.InitAffectAnalyzer(analyzer)

	if cfg.Topic == kafka_client.KAFKA_TOPIC_AFFECT_RESULTS {
		db.InitDynamoDB()
	}

	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_RAW_CONTENT, consumers.StartRawContentConsumer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_AFFECT_REQUEST, consumers.StartAffectAnalysisConsumer)
	kafka_client.RegisterConsumer(kafka_client.KAFKA_TOPIC_AFFECT_RESULTS, consumers.StartResultsConsumer)

	if err := kafka_client.StartConsumer(ctx, cfg); err != nil {
		slog.Error("[Main] Failed to start consumer",
			slog.String("error", err.Error()))
	}
}

// buildAnalyzer loads the lexicon from the configured source and wraps it in
// an analyzer. The lexicon is loaded once; analyzers share it read-only.
func buildAnalyzer(ctx context.Context) (*affect.Analyzer, error) {
	var provider affect.Provider

	switch os.Getenv("LEXICON_SOURCE") {
	case "postgres":
		if err := db.InitDB(); err != nil {
			return nil, err
		}
		provider = db.NewLexiconProvider(nil)
	case "file":
		provider = affect.FileProvider{Path: os.Getenv("LEXICON_FILE")}
	default:
		provider = affect.Builtin()
	}

	lex, err := provider.Load(ctx)
	if err != nil {
		return nil, err
	}
	slog.Info("[Main] Lexicon loaded", slog.Int("words", lex.Len()))

	return affect.NewAnalyzer(lex)
}
