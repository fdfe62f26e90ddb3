package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "acs"

// Redis is a [Store] backed by a Redis keyspace, for clients that share one
// credential profile across processes (agents, sidecars, test rigs).
//
// Keys are laid out as "acs:<namespace>:session" and
// "acs:<namespace>:device_trust". No TTL is set: token lifetime is decided
// by the server, not by this store.
type Redis struct {
	client    *redis.Client
	namespace string
}

// NewRedis describes the newredis operation and its observable behavior.
//
// namespace distinguishes credential profiles sharing one Redis instance;
// it defaults to "default" when empty.
func NewRedis(client *redis.Client, namespace string) (*Redis, error) {
	if client == nil {
		return nil, fmt.Errorf("%w: nil redis client", ErrBackend)
	}
	if namespace == "" {
		namespace = "default"
	}
	return &Redis{client: client, namespace: namespace}, nil
}

func (r *Redis) key(kind Kind) string {
	return redisKeyPrefix + ":" + r.namespace + ":" + kind.String()
}

// Get describes the get operation and its observable behavior.
func (r *Redis) Get(ctx context.Context, kind Kind) (string, bool, error) {
	if !validKind(kind) {
		return "", false, ErrUnknownKind
	}

	value, err := r.client.Get(ctx, r.key(kind)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return value, true, nil
}

// Set describes the set operation and its observable behavior.
func (r *Redis) Set(ctx context.Context, kind Kind, value string) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}
	if value == "" {
		return ErrEmptyValue
	}

	if err := r.client.Set(ctx, r.key(kind), value, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}

// Clear describes the clear operation and its observable behavior.
func (r *Redis) Clear(ctx context.Context, kind Kind) error {
	if !validKind(kind) {
		return ErrUnknownKind
	}

	if err := r.client.Del(ctx, r.key(kind)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrBackend, err)
	}
	return nil
}
