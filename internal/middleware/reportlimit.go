package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ecotrack/waste-report-api/internal/config"
)

// NewDailyReportLimit returns a middleware that caps how many waste reports
// a user may submit per UTC day. The counter lives in Redis under a
// per-user, per-day key that expires at the next UTC midnight, so the quota
// holds across instances and resets without any cleanup job.
//
// The limiter fails open: when Redis is unavailable or the config disables
// it, requests pass through untouched. A quota must never take report
// submission down with it.
func NewDailyReportLimit(cfg config.ReportLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}

	// INCR and set the expiry in one round trip; EXPIRE only on first use
	// so the window is anchored to the first submission's day.
	quotaScript := redis.NewScript(`
        local n = redis.call('INCR', KEYS[1])
        if n == 1 then
            redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
        end
        return n
    `)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}

			now := time.Now().UTC()
			key := fmt.Sprintf("%s:%s:%d", cfg.Prefix, now.Format("20060102"), id.ID)
			midnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)
			ttl := int64(midnight.Sub(now) / time.Second)
			if ttl < 1 {
				ttl = 1
			}

			n, err := quotaScript.Run(c.Request().Context(), rdb, []string{key}, ttl).Int64()
			if err != nil {
				zap.L().Warn("report quota check failed, allowing request",
					zap.String("key", key), zap.Error(err))
				return next(c)
			}

			remaining := int64(cfg.Daily) - n
			if remaining < 0 {
				remaining = 0
			}
			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Daily))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if n > int64(cfg.Daily) {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(ttl, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error":   "too_many_requests",
					"message": fmt.Sprintf("daily limit of %d waste reports exceeded", cfg.Daily),
				})
			}
			return next(c)
		}
	}
}
