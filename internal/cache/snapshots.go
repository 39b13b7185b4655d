// Package cache is the read-through Redis store for upstream snapshots.
// Snapshots are opaque JSON blobs replaced wholesale on every successful
// fetch and deleted after any mutation; there is no partial merge.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edupress/courseplayer/internal/config"
	"github.com/edupress/courseplayer/internal/model"
)

// Snapshots caches enrollment content and quiz details per enrollment.
type Snapshots struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSnapshots creates the snapshot store.
func NewSnapshots(rdb *redis.Client, ttl time.Duration) *Snapshots {
	return &Snapshots{rdb: rdb, ttl: ttl}
}

// GetContent returns the cached enrollment content snapshot, or nil on a
// cache miss.
func (s *Snapshots) GetContent(ctx context.Context, enrollmentID string) (*model.EnrollmentContent, error) {
	var content model.EnrollmentContent
	if ok, err := s.get(ctx, config.CacheKey.EnrollmentContentKey(enrollmentID), &content); !ok {
		return nil, err
	}
	return &content, nil
}

// PutContent replaces the enrollment content snapshot.
func (s *Snapshots) PutContent(ctx context.Context, content *model.EnrollmentContent) error {
	return s.put(ctx, config.CacheKey.EnrollmentContentKey(content.Enrollment.ID), content)
}

// DropContent invalidates the enrollment content snapshot. Called after any
// mutation (mark-lesson, quiz submit, course change) so the next read
// refetches.
func (s *Snapshots) DropContent(ctx context.Context, enrollmentID string) error {
	return s.rdb.Del(ctx, config.CacheKey.EnrollmentContentKey(enrollmentID)).Err()
}

// GetQuiz returns the cached quiz detail, or nil on a cache miss.
func (s *Snapshots) GetQuiz(ctx context.Context, enrollmentID, quizID string) (*model.Quiz, error) {
	var quiz model.Quiz
	if ok, err := s.get(ctx, config.CacheKey.QuizKey(enrollmentID, quizID), &quiz); !ok {
		return nil, err
	}
	return &quiz, nil
}

// PutQuiz replaces the cached quiz detail.
func (s *Snapshots) PutQuiz(ctx context.Context, enrollmentID string, quiz *model.Quiz) error {
	return s.put(ctx, config.CacheKey.QuizKey(enrollmentID, quiz.ID), quiz)
}

func (s *Snapshots) get(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupt entry behaves like a miss; the read-through refill
		// overwrites it.
		return false, nil
	}
	return true, nil
}

func (s *Snapshots) put(ctx context.Context, key string, src interface{}) error {
	data, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
