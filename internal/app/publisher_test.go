package app

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"qcm-extractor/internal/domain"
	"qcm-extractor/internal/infra/memory"
)

type recordingCache struct {
	published []domain.QuestionSet
}

func (c *recordingCache) PublishQuestionSet(ctx context.Context, set domain.QuestionSet) error {
	c.published = append(c.published, set)
	return nil
}

func TestPublishStoresAndCaches(t *testing.T) {
	store := memory.NewSetStore()
	cache := &recordingCache{}
	pub := NewPublisher(store, cache)

	set := domain.QuestionSet{ID: "exam-questions-ar-v1", Language: "ar"}
	if err := pub.Publish(context.Background(), set); err != nil {
		t.Fatalf("publish: %v", err)
	}

	got, err := store.Load(context.Background(), set.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.ID != set.ID {
		t.Fatalf("stored id = %q", got.ID)
	}
	if len(cache.published) != 1 {
		t.Fatalf("cache publish calls: %d", len(cache.published))
	}
}

func TestPublishWithoutCache(t *testing.T) {
	pub := NewPublisher(memory.NewSetStore(), nil)
	if err := pub.Publish(context.Background(), domain.QuestionSet{ID: "x"}); err != nil {
		t.Fatalf("publish without cache: %v", err)
	}
}

func TestPublishFile(t *testing.T) {
	set := domain.QuestionSet{ID: "road-signs-quiz-ar-v1", Title: "اختبار إشارات السير"}
	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	path := filepath.Join(t.TempDir(), "questions.ar.generated.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store := memory.NewSetStore()
	pub := NewPublisher(store, nil)
	published, err := pub.PublishFile(context.Background(), path)
	if err != nil {
		t.Fatalf("publish file: %v", err)
	}
	if published.Title != set.Title {
		t.Fatalf("published title = %q", published.Title)
	}
	if _, err := store.Load(context.Background(), set.ID); err != nil {
		t.Fatalf("stored set missing: %v", err)
	}
}

func TestLoadUnknownSet(t *testing.T) {
	store := memory.NewSetStore()
	if _, err := store.Load(context.Background(), "missing"); !errors.Is(err, domain.ErrSetNotFound) {
		t.Fatalf("expected ErrSetNotFound, got %v", err)
	}
}
