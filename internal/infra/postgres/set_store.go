// Package postgres persists generated question sets as JSONB so the quiz
// serving side can load them without re-running extraction.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"qcm-extractor/internal/domain"
)

// SetStore reads and writes question sets in the question_sets table.
type SetStore struct {
	pool *pgxpool.Pool
}

func NewSetStore(pool *pgxpool.Pool) *SetStore {
	return &SetStore{pool: pool}
}

// Save upserts the set under its stable id; re-running extraction replaces the
// previous publication.
func (s *SetStore) Save(ctx context.Context, set domain.QuestionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal set %s: %w", set.ID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO question_sets (id, data, imported_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, imported_at = EXCLUDED.imported_at`,
		set.ID, data, set.ImportedAt)
	if err != nil {
		return fmt.Errorf("save set %s: %w", set.ID, err)
	}
	return nil
}

// Load fetches a published set by id.
func (s *SetStore) Load(ctx context.Context, id string) (domain.QuestionSet, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT data FROM question_sets WHERE id=$1`, id).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionSet{}, domain.ErrSetNotFound
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("load set %s: %w", id, err)
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("unmarshal set %s: %w", id, err)
	}
	return set, nil
}
