// Package memory provides an in-memory question-set store for tests and demos.
package memory

import (
	"context"
	"sync"

	"qcm-extractor/internal/domain"
)

type SetStore struct {
	mu   sync.RWMutex
	sets map[string]domain.QuestionSet
}

func NewSetStore() *SetStore {
	return &SetStore{sets: make(map[string]domain.QuestionSet)}
}

func (s *SetStore) Save(ctx context.Context, set domain.QuestionSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[set.ID] = set
	return nil
}

func (s *SetStore) Load(ctx context.Context, id string) (domain.QuestionSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[id]
	if !ok {
		return domain.QuestionSet{}, domain.ErrSetNotFound
	}
	return set, nil
}
