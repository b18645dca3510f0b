package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/cache"
	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/email"
	router "dpxcruise/internal/http"
	"dpxcruise/internal/http/handlers"
	"dpxcruise/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	env := intconfig.LoadEnv()
	if err := env.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if env.DefaultSecret() {
		log.Println("warning: JWT_SECRET is not set, tokens are signed with the development default")
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	decimal.MarshalJSONWithoutQuotes = true

	db := intconfig.ConnectDB(env.DB)
	defer intconfig.CloseDB()

	if env.AutoMigrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := intdb.EnsureSchema(ctx, db); err != nil {
			cancel()
			log.Fatalf("schema migration failed: %v", err)
		}
		cancel()
		log.Println("database schema is up to date")
	}

	deps := handlers.Deps{
		DB:     db,
		Tokens: services.TokenIssuer{Secret: []byte(env.JWTSecret), TTL: env.JWTTTL},
		Mailer: email.NewSender(env.SMTP),
		OTPTTL: env.OTPTTL,
	}
	if limiter := cache.NewOTPLimiter(env.Redis); limiter != nil {
		deps.Limiter = limiter
		defer limiter.Close()
	}
	if !env.SMTP.Enabled() {
		log.Println("SMTP_HOST is empty, verification codes are written to the log")
	}

	r := router.NewRouter(env, deps)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server shutdown failed: %v", err)
	}

	log.Println("server stopped cleanly")
}
