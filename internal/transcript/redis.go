package transcript

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/trangdata/ChatGSE/internal/core/error"
	logx "github.com/trangdata/ChatGSE/pkg/logger"
)

// RedisSink mirrors transcript lines into a per-session Redis list so a
// hosted deployment can inspect sessions without shell access to the box.
type RedisSink struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSink(rdb redis.Cmdable, ttl time.Duration) *RedisSink {
	return &RedisSink{rdb: rdb, ttl: ttl}
}

func (s *RedisSink) transcriptKey(sessionID string) string {
	return fmt.Sprintf("session:%s:transcript", sessionID)
}

func (s *RedisSink) Write(ctx context.Context, sessionID, speaker, text string) error {
	key := s.transcriptKey(sessionID)

	if err := s.rdb.RPush(ctx, key, Line(speaker, text)).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to push transcript line to redis")
		return errx.WrapRedis(err)
	}
	// extend TTL on touch
	if s.ttl > 0 {
		if ok, err := s.rdb.Expire(ctx, key, s.ttl).Result(); err != nil {
			logx.Error().Err(err).Str("key", key).Msg("failed to set expire")
			return errx.WrapRedis(err)
		} else if !ok {
			logx.Warn().Str("key", key).Dur("ttl", s.ttl).Msg("failed to set TTL on transcript key")
		}
	}
	return nil
}

// Transcript returns the stored lines for a session in write order.
func (s *RedisSink) Transcript(ctx context.Context, sessionID string) ([]string, error) {
	key := s.transcriptKey(sessionID)

	rows, err := s.rdb.LRange(ctx, key, 0, -1).Result()
	if err != nil {
		if err == redis.Nil {
			return []string{}, nil
		}
		logx.Error().Err(err).Str("key", key).Msg("failed to load transcript from redis")
		return nil, errx.WrapRedis(err)
	}
	return rows, nil
}

// Clear removes a session's stored transcript.
func (s *RedisSink) Clear(ctx context.Context, sessionID string) error {
	key := s.transcriptKey(sessionID)
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		logx.Error().Err(err).Str("key", key).Msg("failed to delete transcript from redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ Sink = (*RedisSink)(nil)
