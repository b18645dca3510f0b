package handlers

import (
	"database/sql"
	"sync"
	"time"

	intconfig "dpxcruise/internal/config"
	"dpxcruise/internal/email"
	"dpxcruise/internal/services"
)

// Deps carries what handlers need beyond the request itself.
type Deps struct {
	DB      *sql.DB
	Tokens  services.TokenIssuer
	Mailer  email.Sender
	Limiter services.SendLimiter
	OTPTTL  time.Duration
	Now     func() time.Time
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// Configure installs the dependencies used by every handler.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func current() Deps {
	depsMu.RLock()
	d := deps
	depsMu.RUnlock()
	if d.DB == nil {
		d.DB = intconfig.DB
	}
	if d.Mailer == nil {
		d.Mailer = email.LogSender{}
	}
	return d
}

func db() *sql.DB { return current().DB }
