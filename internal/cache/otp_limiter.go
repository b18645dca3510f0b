package cache

import (
	"context"
	"errors"
	"time"

	intconfig "dpxcruise/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	minuteWindow = 60 * time.Second
	hourlyLimit  = 10
)

// OTPLimiter throttles verification emails per address: one per minute and
// ten per hour.
type OTPLimiter struct {
	client *redis.Client
}

// NewOTPLimiter returns nil when no Redis address is configured.
func NewOTPLimiter(cfg intconfig.RedisConfig) *OTPLimiter {
	if cfg.Addr == "" {
		return nil
	}
	return &OTPLimiter{client: redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})}
}

func NewOTPLimiterWithClient(client *redis.Client) *OTPLimiter {
	return &OTPLimiter{client: client}
}

func minuteKey(key string) string { return "otp_minute_" + key }
func hourKey(key string) string   { return "otp_hour_" + key }

// Allow reports whether another code may be sent for key. A non-empty reason
// explains a refusal.
func (l *OTPLimiter) Allow(ctx context.Context, key string) (bool, string, error) {
	n, err := l.client.Exists(ctx, minuteKey(key)).Result()
	if err != nil {
		return false, "", err
	}
	if n > 0 {
		return false, "a verification code can be requested once every 60 seconds", nil
	}
	cnt, err := l.client.Get(ctx, hourKey(key)).Int()
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, "", err
	}
	if cnt >= hourlyLimit {
		return false, "at most 10 verification codes can be requested per hour", nil
	}
	return true, "", nil
}

// MarkSent records a delivered code against both windows.
func (l *OTPLimiter) MarkSent(ctx context.Context, key string) error {
	pipe := l.client.TxPipeline()
	pipe.Set(ctx, minuteKey(key), 1, minuteWindow)
	pipe.Incr(ctx, hourKey(key))
	pipe.Expire(ctx, hourKey(key), time.Hour)
	_, err := pipe.Exec(ctx)
	return err
}

func (l *OTPLimiter) Close() error {
	return l.client.Close()
}
