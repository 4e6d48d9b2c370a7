package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"qcm-extractor/internal/domain"
)

// SetCache mirrors freshly generated question sets into Redis so the serving
// layer can pick them up without touching Postgres.
// Sets are stored as:    SET qcm:set:{setID} {json} EX {ttl}
// Reports are stored as: SET qcm:report:{name} {json} EX {ttl}
type SetCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSetCache(client *redis.Client, ttl time.Duration) *SetCache {
	return &SetCache{client: client, ttl: ttl}
}

func (c *SetCache) PublishQuestionSet(ctx context.Context, set domain.QuestionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal set %s: %w", set.ID, err)
	}
	if err := c.client.Set(ctx, c.setKey(set.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("publish set %s: %w", set.ID, err)
	}
	return nil
}

// PublishReport caches an extraction report under its name; report can be any
// of the report types in domain.
func (c *SetCache) PublishReport(ctx context.Context, name string, report interface{}) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report %s: %w", name, err)
	}
	if err := c.client.Set(ctx, c.reportKey(name), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("publish report %s: %w", name, err)
	}
	return nil
}

// LatestQuestionSet returns the cached set, or domain.ErrSetNotFound when the
// key is missing or expired.
func (c *SetCache) LatestQuestionSet(ctx context.Context, id string) (domain.QuestionSet, error) {
	raw, err := c.client.Get(ctx, c.setKey(id)).Bytes()
	if err == redis.Nil {
		return domain.QuestionSet{}, domain.ErrSetNotFound
	}
	if err != nil {
		return domain.QuestionSet{}, fmt.Errorf("get set %s: %w", id, err)
	}
	var set domain.QuestionSet
	if err := json.Unmarshal(raw, &set); err != nil {
		return domain.QuestionSet{}, fmt.Errorf("unmarshal set %s: %w", id, err)
	}
	return set, nil
}

func (c *SetCache) setKey(id string) string {
	return "qcm:set:" + id
}

func (c *SetCache) reportKey(name string) string {
	return "qcm:report:" + name
}
