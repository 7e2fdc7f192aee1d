package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reda_kids_backend/internal/model"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	summaryKeyPrefix        = "reda:summary:"
	summaryVersionKeyPrefix = "reda:summary-version:"
)

var (
	ErrCacheMiss = errors.New("cache miss")
	// ErrStaleSummary is returned by Set when the student was invalidated
	// after the version was read; nothing is written.
	ErrStaleSummary = errors.New("summary invalidated while it was computed")
)

// SummaryCache stores aggregated student summaries in redis.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

func SummaryKey(studentID uint) string {
	return fmt.Sprintf("%s%d", summaryKeyPrefix, studentID)
}

// SummaryVersionKey holds a counter bumped by every invalidation of the student.
func SummaryVersionKey(studentID uint) string {
	return fmt.Sprintf("%s%d", summaryVersionKeyPrefix, studentID)
}

// Get returns ErrCacheMiss when no summary is stored for the student.
func (c *SummaryCache) Get(ctx context.Context, studentID uint) (*model.AggregatedStudentStats, error) {
	data, err := c.client.Get(ctx, SummaryKey(studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}

	var stats model.AggregatedStudentStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	if stats.ProgressByGame == nil {
		stats.ProgressByGame = map[string]model.GameProgress{}
	}
	return &stats, nil
}

// Version reads the invalidation counter of the student, 0 when it was never invalidated.
func (c *SummaryCache) Version(ctx context.Context, studentID uint) (int64, error) {
	version, err := c.client.Get(ctx, SummaryVersionKey(studentID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return version, err
}

// Set stores stats only if the invalidation counter still equals version.
// The counter is watched, so an invalidation racing with the write aborts it.
func (c *SummaryCache) Set(ctx context.Context, studentID uint, version int64, stats *model.AggregatedStudentStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	versionKey := SummaryVersionKey(studentID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return ErrStaleSummary
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SummaryKey(studentID), data, c.ttl)
			return nil
		})
		return err
	}, versionKey)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrStaleSummary
	}
	return err
}

// Invalidate drops the summary and bumps the version in one transaction.
func (c *SummaryCache) Invalidate(ctx context.Context, studentID uint) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, SummaryKey(studentID))
		pipe.Incr(ctx, SummaryVersionKey(studentID))
		return nil
	})
	return err
}
