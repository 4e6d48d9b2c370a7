package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"qcm-extractor/internal/domain"
)

// SetStore persists published question sets for the serving side.
type SetStore interface {
	Save(ctx context.Context, set domain.QuestionSet) error
	Load(ctx context.Context, id string) (domain.QuestionSet, error)
}

// SetCache mirrors published sets into a fast store; optional.
type SetCache interface {
	PublishQuestionSet(ctx context.Context, set domain.QuestionSet) error
}

// Publisher pushes generated question sets to the durable store and, when a
// cache is configured, mirrors them there.
type Publisher struct {
	store SetStore
	cache SetCache
}

func NewPublisher(store SetStore, cache SetCache) *Publisher {
	return &Publisher{store: store, cache: cache}
}

func (p *Publisher) Publish(ctx context.Context, set domain.QuestionSet) error {
	if err := p.store.Save(ctx, set); err != nil {
		return err
	}
	if p.cache != nil {
		if err := p.cache.PublishQuestionSet(ctx, set); err != nil {
			return err
		}
	}
	return nil
}

// PublishFile loads a generated question-set JSON file and publishes it.
func (p *Publisher) PublishFile(ctx context.Context, path string) (domain.QuestionSet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("read generated set: %w", err)
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("decode generated set %s: %w", path, err)
	}
	if err := p.Publish(ctx, set); err != nil {
		return domain.QuestionSet{}, err
	}
	return set, nil
}
