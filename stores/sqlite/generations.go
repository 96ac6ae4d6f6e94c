// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mdhender/pegts/model"
)

const generationColumns = `id, key, input_name, input_sha256, error_name, trace, output, created_at`

// InsertGeneration inserts a Generation and returns its assigned ID.
// Keys are content hashes, so a second insert of a key is a no-op that
// returns the ID of the row already stored.
func (s *SQLiteStore) InsertGeneration(ctx context.Context, g *model.Generation) (int64, error) {
	const query = `
		INSERT INTO generations (key, input_name, input_sha256, error_name, trace, output, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO NOTHING
	`
	trace := 0
	if g.Trace {
		trace = 1
	}
	result, err := s.db.ExecContext(ctx, query,
		g.Key,
		g.InputName,
		g.InputSHA256,
		g.ErrorName,
		trace,
		g.Output,
		g.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("insert generation: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("insert generation: %w", err)
	}

	var id int64
	if n == 0 {
		err = s.db.QueryRowContext(ctx, `SELECT id FROM generations WHERE key = ?`, g.Key).Scan(&id)
	} else {
		id, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("insert generation: %w", err)
	}
	g.ID = id
	return id, nil
}

// GetGenerationByKey returns the cached generation for key,
// or nil if there is none.
func (s *SQLiteStore) GetGenerationByKey(ctx context.Context, key string) (*model.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations WHERE key = ?`
	g, err := scanGeneration(s.db.QueryRowContext(ctx, query, key))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query generation: %w", err)
	}
	return g, nil
}

// ListGenerations returns all cached generations, newest first.
func (s *SQLiteStore) ListGenerations(ctx context.Context) ([]*model.Generation, error) {
	query := `SELECT ` + generationColumns + ` FROM generations ORDER BY created_at DESC, id DESC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query generations: %w", err)
	}
	defer rows.Close()

	var generations []*model.Generation
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, err
		}
		generations = append(generations, g)
	}
	return generations, rows.Err()
}

// DeleteGenerationsBefore removes generations created before t and
// returns the number removed.
func (s *SQLiteStore) DeleteGenerationsBefore(ctx context.Context, t time.Time) (int64, error) {
	const query = `DELETE FROM generations WHERE created_at < ?`
	result, err := s.db.ExecContext(ctx, query, t.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, fmt.Errorf("delete generations: %w", err)
	}
	return result.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGeneration(row scanner) (*model.Generation, error) {
	var g model.Generation
	var trace int
	var createdAt string
	if err := row.Scan(&g.ID, &g.Key, &g.InputName, &g.InputSHA256, &g.ErrorName, &trace, &g.Output, &createdAt); err != nil {
		return nil, err
	}
	g.Trace = trace != 0
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	g.CreatedAt = t
	return &g, nil
}
