package cache

import (
	"testing"

	intconfig "dpxcruise/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewOTPLimiterDisabledWithoutAddr(t *testing.T) {
	assert.Nil(t, NewOTPLimiter(intconfig.RedisConfig{}))
	assert.NotNil(t, NewOTPLimiter(intconfig.RedisConfig{Addr: "127.0.0.1:6379"}))
}

func TestLimiterKeys(t *testing.T) {
	assert.Equal(t, "otp_minute_a@b.com", minuteKey("a@b.com"))
	assert.Equal(t, "otp_hour_a@b.com", hourKey("a@b.com"))
}
