package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string `env:"PASSKIT_ADDR" envDefault:":3000"`
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	TLSCert string `env:"TLS_CERT"`
	TLSKey  string `env:"TLS_KEY"`

	DatabaseURL string `env:"DATABASE_URL"`

	RedisURL      string `env:"REDIS_URL"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisUser     string `env:"REDIS_USER"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"AUTH_JWT_SECRET"`
	ClockSkew time.Duration `env:"AUTH_CLOCK_SKEW" envDefault:"60s"`
	AdminTTL  time.Duration `env:"AUTH_ADMIN_TTL" envDefault:"12h"`

	Argon2Memory uint32 `env:"ARGON2_MEMORY" envDefault:"131072"` // KiB
	Argon2Iter   uint32 `env:"ARGON2_ITER" envDefault:"3"`
	Argon2Par    uint8  `env:"ARGON2_PAR" envDefault:"1"`

	MaxBodySize       int64 `env:"MAX_BODY_SIZE" envDefault:"65536"`
	MaxGenerateLength int   `env:"MAX_GENERATE_LENGTH" envDefault:"128"`

	HistorySize int           `env:"HISTORY_SIZE" envDefault:"5"`
	HistoryTTL  time.Duration `env:"HISTORY_TTL" envDefault:"1h"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"20"`

	VerifyMax    int           `env:"VERIFY_RATE_MAX" envDefault:"30"`
	VerifyWindow time.Duration `env:"VERIFY_RATE_WINDOW" envDefault:"1m"`

	AuditRetentionDays int    `env:"AUDIT_RETENTION_DAYS" envDefault:"30"`
	AuditRetentionAt   string `env:"AUDIT_RETENTION_AT" envDefault:"03:00"`
	AuditRetentionTZ   string `env:"AUDIT_RETENTION_TZ" envDefault:"UTC"`
	AuditQueueBuffer   int    `env:"AUDIT_QUEUE_BUFFER" envDefault:"10000"`
	AuditQueueWorkers  int    `env:"AUDIT_QUEUE_WORKERS" envDefault:"2"`

	S3Endpoint  string `env:"AWS_ENDPOINT"`
	S3Region    string `env:"AWS_REGION" envDefault:"auto"`
	S3Bucket    string `env:"AWS_BUCKET"`
	S3AccessKey string `env:"AWS_ACCESS_KEY_ID"`
	S3SecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	S3PathStyle bool   `env:"AWS_PATH_STYLE"`

	// Reverse proxies whose X-Forwarded-For is believed (CIDRs or IPs).
	TrustedProxies []string `env:"TRUSTED_PROXIES" envSeparator:","`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`
}

// Load reads optional .env files, then parses the environment.
func Load(files ...string) (Config, error) {
	for _, f := range files {
		_ = godotenv.Load(f) // missing files are fine
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) RedisEnabled() bool { return c.RedisURL != "" || c.RedisAddr != "" }

func (c Config) S3Enabled() bool { return c.S3Bucket != "" && c.S3Endpoint != "" }

func (c Config) TLSEnabled() bool { return c.TLSCert != "" && c.TLSKey != "" }
