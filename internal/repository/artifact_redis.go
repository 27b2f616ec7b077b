package repository

import (
	"context"
	"errors"
	"fmt"

	domrepo "ChurnScope/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

// RedisArtifactSource reads the artifact bytes stored under a single key,
// for deployments where the training job publishes the model to Redis.
type RedisArtifactSource struct {
	cli    *redis.Client
	key    string
	format string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
	Format   string
}

func NewRedisArtifactSource(cfg RedisConfig) *RedisArtifactSource {
	rdb := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	format := cfg.Format
	if format == "" {
		format = "json"
	}
	return &RedisArtifactSource{cli: rdb, key: cfg.Key, format: format}
}

func (s *RedisArtifactSource) Name() string   { return "redis://" + s.cli.Options().Addr + "/" + s.key }
func (s *RedisArtifactSource) Format() string { return s.format }

func (s *RedisArtifactSource) Read(ctx context.Context) ([]byte, error) {
	b, err := s.cli.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("artifact key %q not found", s.key)
		}
		return nil, fmt.Errorf("redis get artifact: %w", err)
	}
	return b, nil
}

func (s *RedisArtifactSource) Close() error {
	return s.cli.Close()
}

var _ domrepo.ArtifactSource = (*RedisArtifactSource)(nil)
