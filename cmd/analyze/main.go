package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spacesedan/affectflow/internal/affect"
	"github.com/spacesedan/affectflow/internal/logging"
	"github.com/spacesedan/affectflow/internal/sentiment"
)

// One-shot analysis without brokers or databases: text in, JSON out.
func main() {
	lexiconPath := flag.String("lexicon", "", "JSON lexicon file (default: built-in English lexicon)")
	inputPath := flag.String("input", "-", "text file to analyze ('-' for stdin)")
	withVader := flag.Bool("vader", false, "include the VADER polarity score")
	flag.Parse()

	logging.InitLogger()

	var provider affect.Provider = affect.Builtin()
	if *lexiconPath != "" {
		provider = affect.FileProvider{Path: *lexiconPath}
	}

	lex, err := provider.Load(context.Background())
	if err != nil {
		slog.Error("Failed to load lexicon", slog.String("error", err.Error()))
		os.Exit(1)
	}

	analyzer, err := affect.NewAnalyzer(lex)
	if err != nil {
		slog.Error("Failed to build analyzer", slog.String("error", err.Error()))
		os.Exit(1)
	}

	text, err := readInput(*inputPath)
	if err != nil {
		slog.Error("Failed to read input", slog.String("error", err.Error()))
		os.Exit(1)
	}

	res := analyzer.Analyze(text)

	out := map[string]any{
		"word_count":  res.WordCount,
		"raw_counts":  res.RawCounts,
		"frequencies": res.Frequencies,
		"top_affects": res.TopAffects(),
	}
	if len(res.AffectWords) > 0 {
		out["affect_words"] = res.AffectWords
	}
	if *withVader {
		score, label := sentiment.ScoreWithVADER(text)
		out["vader_score"] = score
		out["vader_label"] = label
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
