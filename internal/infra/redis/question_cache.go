package redis

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"time"

	"clubcine-quiz/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionLoader fetches the question set from a backing resource (file, URL, database).
type QuestionLoader interface {
	LoadQuestions(ctx context.Context) ([]domain.Question, error)
}

// QuestionCache caches the encoded question set in Redis and falls back to a loader on miss.
// The set is stored as a single JSON value: SET quiz:questions:{source} <json> EX ttl
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	key    string
	ttl    time.Duration
	log    *zap.Logger
	sf     singleflight.Group
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, source string, ttl time.Duration, log *zap.Logger) *QuestionCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &QuestionCache{
		client: client,
		loader: loader,
		key:    questionsKey(source),
		ttl:    ttl,
		log:    log,
	}
}

func (c *QuestionCache) LoadQuestions(ctx context.Context) ([]domain.Question, error) {
	if questions, ok := c.cached(ctx); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(c.key, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.cached(ctx); ok {
			return questions, nil
		}

		questions, err := c.loader.LoadQuestions(ctx)
		if err != nil {
			return nil, err
		}
		if len(questions) == 0 {
			// never cache an empty set
			return questions, nil
		}

		data, err := json.Marshal(questions)
		if err != nil {
			return nil, err
		}
		if err := c.client.Set(ctx, c.key, data, c.ttlWithJitter()).Err(); err != nil {
			c.log.Warn("question cache write failed", zap.String("key", c.key), zap.Error(err))
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

func (c *QuestionCache) cached(ctx context.Context) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("question cache read failed", zap.String("key", c.key), zap.Error(err))
		}
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil || len(questions) == 0 {
		return nil, false
	}
	return questions, true
}

// Invalidate drops the cached set so the next load goes to the backing loader.
func (c *QuestionCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

// DropQuestions removes the cached set for source, as written by any QuestionCache.
func DropQuestions(ctx context.Context, client *redis.Client, source string) error {
	return client.Del(ctx, questionsKey(source)).Err()
}

func questionsKey(source string) string {
	return "quiz:questions:" + source
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(rand.Int64N(jitterMax+1))
}
