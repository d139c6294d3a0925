package redis_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrIntentNotFound = errors.New("payment intent not found")

// 一個 session 同時只會有一筆待確認的 payment intent
type PaymentIntentRecord struct {
	IntentID     string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type IPaymentIntentRepository interface {
	Get(ctx context.Context, sessionID string) (*PaymentIntentRecord, error)
	Set(ctx context.Context, sessionID string, record *PaymentIntentRecord) error
	Delete(ctx context.Context, sessionID string) error
}

type PaymentIntentRepo struct {
	IntentCache *redis.Client
	ttl         time.Duration
}

func NewPaymentIntentRepo(intentCache *redis.Client, ttl time.Duration) *PaymentIntentRepo {
	return &PaymentIntentRepo{IntentCache: intentCache, ttl: ttl}
}

func generateIntentKey(sessionID string) string {
	return fmt.Sprintf("payintent:%s", sessionID)
}

func (r *PaymentIntentRepo) Get(ctx context.Context, sessionID string) (*PaymentIntentRecord, error) {
	key := generateIntentKey(sessionID)

	fields, err := r.IntentCache.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrIntentNotFound
	}

	return &PaymentIntentRecord{
		IntentID:     fields["id"],
		ClientSecret: fields["client_secret"],
	}, nil
}

// Set 寫入 session 的 payment intent，已存在則整筆覆蓋
func (r *PaymentIntentRepo) Set(ctx context.Context, sessionID string, record *PaymentIntentRecord) error {
	key := generateIntentKey(sessionID)

	// 使用 Lua 腳本確保覆蓋與過期設置的原子性
	luaScript := `
		redis.call('DEL', KEYS[1])
		redis.call('HSET', KEYS[1], 'id', ARGV[1], 'client_secret', ARGV[2])
		redis.call('PEXPIRE', KEYS[1], ARGV[3])
		return 1
	`
	_, err := r.IntentCache.Eval(ctx, luaScript, []string{key},
		record.IntentID, record.ClientSecret, r.ttl.Milliseconds()).Result()
	if err != nil {
		return fmt.Errorf("failed to set payment intent: %w", err)
	}
	return nil
}

func (r *PaymentIntentRepo) Delete(ctx context.Context, sessionID string) error {
	return r.IntentCache.Del(ctx, generateIntentKey(sessionID)).Err()
}
