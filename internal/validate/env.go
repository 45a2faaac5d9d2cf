package validate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/5w1tchy/passkit/internal/config"
	"github.com/5w1tchy/passkit/internal/generator"
	"github.com/redis/go-redis/v9"
)

// Env validates security-relevant configuration. Fail-fast on bad config.
func Env(cfg config.Config) error {
	// JWT secret must be present & reasonably long
	if len(cfg.JWTSecret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if cfg.AdminTTL <= 0 {
		return fmt.Errorf("AUTH_ADMIN_TTL: must be > 0")
	}

	// Argon2 lower bounds
	if cfg.Argon2Memory < 65536 { // >= 64MiB
		return fmt.Errorf("ARGON2_MEMORY: must be >= %d", 65536)
	}
	if cfg.Argon2Iter < 2 {
		return fmt.Errorf("ARGON2_ITER: must be >= %d", 2)
	}
	if cfg.Argon2Par < 1 {
		return fmt.Errorf("ARGON2_PAR: must be >= %d", 1)
	}

	if cfg.MaxGenerateLength < generator.MinLength {
		return fmt.Errorf("MAX_GENERATE_LENGTH: must be >= %d", generator.MinLength)
	}
	if cfg.HistorySize < 1 {
		return fmt.Errorf("HISTORY_SIZE: must be >= 1")
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_RPS/RATE_LIMIT_BURST: must be positive")
	}
	if cfg.VerifyMax < 1 || cfg.VerifyWindow <= 0 {
		return fmt.Errorf("VERIFY_RATE_MAX/VERIFY_RATE_WINDOW: must be positive")
	}
	if _, err := time.LoadLocation(cfg.AuditRetentionTZ); err != nil {
		return fmt.Errorf("AUDIT_RETENTION_TZ: %w", err)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(cfg config.Config) []string {
	var warns []string

	if cfg.AdminTTL > 24*time.Hour {
		warns = append(warns, fmt.Sprintf("AUTH_ADMIN_TTL=%s is > 24h; consider shorter admin tokens", cfg.AdminTTL))
	}
	if cfg.HistoryTTL > 24*time.Hour {
		warns = append(warns, fmt.Sprintf("HISTORY_TTL=%s keeps generated passwords around for more than a day", cfg.HistoryTTL))
	}
	if !cfg.RedisEnabled() {
		warns = append(warns, "Redis not configured: history is in-memory and rate limiting is off")
	}
	if cfg.DatabaseURL == "" {
		warns = append(warns, "DATABASE_URL not set: audit statistics are disabled")
	}

	if strings.EqualFold(cfg.AppEnv, "production") {
		if !cfg.TLSEnabled() {
			warns = append(warns, "TLS_CERT/TLS_KEY not set; serving plain HTTP in production")
		}
		if strings.HasPrefix(cfg.RedisURL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if cfg.RedisURL == "" && cfg.RedisAddr != "" && (cfg.RedisUser == "" || cfg.RedisPassword == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
	}
	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}
