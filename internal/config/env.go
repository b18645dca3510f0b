package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret is the development fallback for JWT_SECRET. Tokens signed
// with it can be forged by anyone who has read this file.
const DefaultJWTSecret = "change-me"

var ErrDefaultJWTSecret = errors.New("JWT_SECRET must be set when GIN_MODE=release")

type DBConfig struct {
	User     string
	Password string
	Host     string
	Name     string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

// Enabled reports whether outgoing mail should go through SMTP.
func (c SMTPConfig) Enabled() bool {
	return c.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Env struct {
	AppAddr     string
	GinMode     string
	DB          DBConfig
	JWTSecret   string
	JWTTTL      time.Duration
	OTPTTL      time.Duration
	SMTP        SMTPConfig
	Redis       RedisConfig
	CORSOrigins []string
	AutoMigrate bool
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr: getString("APP_ADDR", ":8080"),
		GinMode: getString("GIN_MODE", ""),
		DB: DBConfig{
			User:     getString("DB_USER", "root"),
			Password: getString("DB_PASSWORD", ""),
			Host:     getString("DB_HOST", "127.0.0.1:3306"),
			Name:     getString("DB_NAME", "dpx_cruise"),
		},
		JWTSecret: getString("JWT_SECRET", DefaultJWTSecret),
		JWTTTL:    time.Duration(getInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		OTPTTL:    time.Duration(getInt("OTP_TTL_MINUTES", 5)) * time.Minute,
		SMTP: SMTPConfig{
			Host:     getString("SMTP_HOST", ""),
			Port:     getInt("SMTP_PORT", 587),
			User:     getString("SMTP_USER", ""),
			Password: getString("SMTP_PASSWORD", ""),
			From:     getString("SMTP_FROM", "no-reply@dpxcruise.local"),
		},
		Redis: RedisConfig{
			Addr:     getString("REDIS_ADDR", ""),
			Password: getString("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		CORSOrigins: getList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		AutoMigrate: getBool("DB_AUTO_MIGRATE", false),
	}
}

// DefaultSecret reports whether tokens would be signed with DefaultJWTSecret.
func (e Env) DefaultSecret() bool {
	return e.JWTSecret == DefaultJWTSecret
}

// Validate refuses settings that are only acceptable in development.
func (e Env) Validate() error {
	if e.GinMode == "release" && e.DefaultSecret() {
		return ErrDefaultJWTSecret
	}
	return nil
}

func getString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
