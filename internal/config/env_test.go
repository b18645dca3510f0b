package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "JWT_TTL_MINUTES", "OTP_TTL_MINUTES", "CORS_ALLOWED_ORIGINS", "DB_NAME", "SMTP_HOST"} {
		t.Setenv(k, "")
	}

	env := LoadEnv()
	assert.Equal(t, ":8080", env.AppAddr)
	assert.Equal(t, time.Hour, env.JWTTTL)
	assert.Equal(t, 5*time.Minute, env.OTPTTL)
	assert.Equal(t, "dpx_cruise", env.DB.Name)
	assert.False(t, env.SMTP.Enabled())
	assert.NotEmpty(t, env.CORSOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("OTP_TTL_MINUTES", "10")
	t.Setenv("JWT_TTL_MINUTES", "bogus")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	env := LoadEnv()
	assert.Equal(t, ":9090", env.AppAddr)
	assert.Equal(t, 10*time.Minute, env.OTPTTL)
	assert.Equal(t, time.Hour, env.JWTTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, env.CORSOrigins)
	assert.True(t, env.AutoMigrate)
}

func TestValidateRefusesDefaultSecretInRelease(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	env := LoadEnv()
	assert.True(t, env.DefaultSecret())
	assert.NoError(t, env.Validate())

	env.GinMode = "release"
	assert.ErrorIs(t, env.Validate(), ErrDefaultJWTSecret)

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	env = LoadEnv()
	env.GinMode = "release"
	assert.False(t, env.DefaultSecret())
	assert.NoError(t, env.Validate())
}
