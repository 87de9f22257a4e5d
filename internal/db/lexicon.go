package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spacesedan/affectflow/internal/affect"
)

// LexiconProvider loads the affect lexicon from the lexicon table:
//
//	CREATE TABLE lexicon (
//	    word    TEXT PRIMARY KEY,
//	    affects TEXT[] NOT NULL
//	);
//
// This is the operational lexicon source; file and builtin providers cover
// local runs and tests.
type LexiconProvider struct {
	Pool *pgxpool.Pool
}

// NewLexiconProvider uses the shared pool from InitDB unless one is given.
func NewLexiconProvider(pool *pgxpool.Pool) LexiconProvider {
	if pool == nil {
		pool = DB
	}
	return LexiconProvider{Pool: pool}
}

func (p LexiconProvider) Load(ctx context.Context) (affect.Lexicon, error) {
	if p.Pool == nil {
		return nil, fmt.Errorf("[LexiconProvider] database pool is not initialized")
	}

	rows, err := p.Pool.Query(ctx, `SELECT word, affects FROM lexicon`)
	if err != nil {
		return nil, fmt.Errorf("[LexiconProvider] failed to query lexicon: %w", err)
	}
	defer rows.Close()

	entries := make(map[string][]string)
	for rows.Next() {
		var word string
		var affects []string
		if err := rows.Scan(&word, &affects); err != nil {
			slog.Warn("[LexiconProvider] Failed to scan lexicon row",
				slog.String("error", err.Error()))
			continue
		}
		entries[word] = affects
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("[LexiconProvider] lexicon scan failed: %w", err)
	}

	lex, err := affect.StaticProvider{Entries: entries}.Load(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("[LexiconProvider] Loaded lexicon from PostgreSQL",
		slog.Int("words", lex.Len()))
	return lex, nil
}
