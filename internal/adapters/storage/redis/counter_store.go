// Package redis guarda los contadores de registro con INCR, atómico por clave.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "petdoc:counter:"

// Open parsea la URL y verifica la conexión con un PING.
func Open(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

type CounterStore struct {
	client *redis.Client
}

func NewCounterStore(client *redis.Client) *CounterStore {
	return &CounterStore{client: client}
}

// Increment usa INCR: crea la clave en 0 si falta y devuelve el valor nuevo.
func (s *CounterStore) Increment(ctx context.Context, region string) (int64, error) {
	n, err := s.client.Incr(ctx, keyPrefix+region).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	return n, nil
}

func (s *CounterStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
