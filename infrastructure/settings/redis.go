package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix    = "settings"
	sessionsKey  = "settings:sessions"
	maxTxRetries = 3
)

// sessionKeys são as chaves consideradas para decidir se uma sessão ainda existe
var sessionKeys = []string{KeySalesGoal, KeyDateRange, KeyAuth}

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore cria um Store no Redis. ttl zero mantém as chaves sem expiração.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{
		client: client,
		ttl:    ttl,
	}
}

// NewRedisClient conecta ao Redis e valida a conexão
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("settings: ping redis: %w", err)
	}

	return client, nil
}

func (s *redisStore) Get(ctx context.Context, sessionID, key string, dest any) (bool, error) {
	if sessionID == "" {
		return false, ErrSessionRequired
	}

	raw, err := s.client.Get(ctx, settingKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("settings: get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("settings: decode %s: %w", key, err)
	}

	return true, nil
}

func (s *redisStore) Set(ctx context.Context, sessionID, key string, value any) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("settings: encode %s: %w", key, err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, settingKey(sessionID, key), raw, s.ttl)
		pipe.SAdd(ctx, sessionsKey, sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("settings: set %s: %w", key, err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID, key string) error {
	if sessionID == "" {
		return ErrSessionRequired
	}

	target := settingKey(sessionID, key)
	remaining := make([]string, 0, len(sessionKeys))
	for _, other := range sessionKeys {
		if other != key {
			remaining = append(remaining, settingKey(sessionID, other))
		}
	}

	// A sessão sai de settings:sessions junto com a última chave. WATCH aborta
	// a transação se outra escrita tocar as chaves da sessão no meio do caminho.
	clearTx := func(tx *redis.Tx) error {
		left, err := tx.Exists(ctx, remaining...).Result()
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, target)
			if left == 0 {
				pipe.SRem(ctx, sessionsKey, sessionID)
			}
			return nil
		})
		return err
	}

	watched := append([]string{target}, remaining...)
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := s.client.Watch(ctx, clearTx, watched...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return fmt.Errorf("settings: clear %s: %w", key, err)
		}
		return nil
	}

	return fmt.Errorf("settings: clear %s: %w", key, redis.TxFailedErr)
}

// Sessions remove do índice as sessões cujas chaves já expiraram pelo TTL
func (s *redisStore) Sessions(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, sessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("settings: list sessions: %w", err)
	}

	sessions := make([]string, 0, len(members))
	for _, sessionID := range members {
		keys := make([]string, 0, len(sessionKeys))
		for _, key := range sessionKeys {
			keys = append(keys, settingKey(sessionID, key))
		}

		alive, err := s.client.Exists(ctx, keys...).Result()
		if err != nil {
			return nil, fmt.Errorf("settings: list sessions: %w", err)
		}
		if alive > 0 {
			sessions = append(sessions, sessionID)
			continue
		}

		if err := s.client.SRem(ctx, sessionsKey, sessionID).Err(); err != nil {
			return nil, fmt.Errorf("settings: prune session %s: %w", sessionID, err)
		}
	}

	sort.Strings(sessions)
	return sessions, nil
}

func settingKey(sessionID, key string) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, sessionID, key)
}
