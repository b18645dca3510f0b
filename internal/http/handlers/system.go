package handlers

import (
	"cmp"
	"context"
	"net/http"
	"slices"
	"sync"
	"time"

	"dpxcruise/internal/email"

	"github.com/gin-gonic/gin"
)

const dbCheckTimeout = 3 * time.Second

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter records the engine whose route table /api/routes reports.
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	router = r
	routerMu.Unlock()
}

// GET /api/health
func Health(c *gin.Context) {
	d := current()
	_, logMail := d.Mailer.(email.LogSender)
	c.JSON(http.StatusOK, gin.H{
		"status":      "ok",
		"service":     "dpx-cruise",
		"otp_limiter": d.Limiter != nil,
		"smtp":        !logMail,
	})
}

// GET /api/db-check pings MySQL and counts trips so a wrong schema shows up
// as well as a dead connection.
func DBCheck(c *gin.Context) {
	conn := db()
	if conn == nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database is not connected", nil)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), dbCheckTimeout)
	defer cancel()

	started := time.Now()
	if err := conn.PingContext(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database ping failed", err.Error())
		return
	}
	var trips, active int
	err := conn.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_active = 'Y'), 0) FROM dpx_trip").Scan(&trips, &active)
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, "db_unavailable", "database query failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "database connection OK",
		"trips":        trips,
		"active_trips": active,
		"latency_ms":   time.Since(started).Milliseconds(),
	})
}

// GET /api/routes
func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "router_not_ready", "router is not ready", nil)
		return
	}
	routes := r.Routes()
	slices.SortFunc(routes, func(a, b gin.RouteInfo) int {
		return cmp.Or(cmp.Compare(a.Path, b.Path), cmp.Compare(a.Method, b.Method))
	})
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{"method": rt.Method, "path": rt.Path})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(out), "routes": out})
}
