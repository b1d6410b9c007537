package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kamesh07032005/Gpaydynamic/internal/domain/capability"
	"github.com/kamesh07032005/Gpaydynamic/internal/infrastructure/config"
)

// NewRedisClient Redisクライアントを作成し、疎通を確認する
func NewRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// RedisStore Redis実装のcapability.Store
// 値はシリアライズされた真偽値として保存されるため、CachedAtは復元されない
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisStore 新しいRedisStoreを作成
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		tracer: otel.Tracer("capability-redis-store"),
	}
}

// cacheKey セッションIDで名前空間化したキャッシュキーを返す
func (s *RedisStore) cacheKey(sessionID string) string {
	return capability.CacheKey + ":" + sessionID
}

// Get セッションのキャッシュ済み判定を取得
// エントリが存在しない場合はErrNotCachedを返す
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*capability.Entry, error) {
	ctx, span := s.tracer.Start(ctx, "RedisStore.Get")
	defer span.End()

	key := s.cacheKey(sessionID)
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.redis.key", key),
	)

	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		span.SetStatus(otelcodes.Ok, "capability not cached")
		return nil, capability.ErrNotCached
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to get capability entry: %w", err)
	}

	canMakePayment, err := strconv.ParseBool(val)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return nil, fmt.Errorf("failed to parse capability entry: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "capability entry found")
	return &capability.Entry{CanMakePayment: canMakePayment}, nil
}

// Set セッションの判定を保存
func (s *RedisStore) Set(ctx context.Context, sessionID string, canMakePayment bool) error {
	ctx, span := s.tracer.Start(ctx, "RedisStore.Set")
	defer span.End()

	key := s.cacheKey(sessionID)
	span.SetAttributes(
		attribute.String("db.system", "redis"),
		attribute.String("db.redis.key", key),
		attribute.Bool("capability.can_make_payment", canMakePayment),
	)

	if err := s.client.Set(ctx, key, strconv.FormatBool(canMakePayment), s.ttl).Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(otelcodes.Error, err.Error())
		return fmt.Errorf("failed to set capability entry: %w", err)
	}

	span.SetStatus(otelcodes.Ok, "capability entry saved")
	return nil
}
