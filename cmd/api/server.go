package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/5w1tchy/passkit/internal/api/handlers"
	admin "github.com/5w1tchy/passkit/internal/api/handlers/admin"
	"github.com/5w1tchy/passkit/internal/api/handlers/passwords"
	mw "github.com/5w1tchy/passkit/internal/api/middlewares"
	"github.com/5w1tchy/passkit/internal/api/router"
	"github.com/5w1tchy/passkit/internal/config"
	"github.com/5w1tchy/passkit/internal/history"
	"github.com/5w1tchy/passkit/internal/maintenance"
	"github.com/5w1tchy/passkit/internal/metrics/auditqueue"
	jwtutil "github.com/5w1tchy/passkit/internal/security/jwt"
	"github.com/5w1tchy/passkit/internal/security/password"
	auditstore "github.com/5w1tchy/passkit/internal/store/audit"
	"github.com/5w1tchy/passkit/internal/validate"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load(".env", "../../.env")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := validate.Env(cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Printf("[config] WARNING: %s", w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	signer, err := jwtutil.NewSigner(cfg.JWTSecret, cfg.ClockSkew)
	if err != nil {
		log.Fatalf("jwt: %v", err)
	}

	checks := map[string]handlers.Check{}

	// --- Redis (optional): history, rate limits, stats cache ---
	var rdb *redis.Client
	var hist history.Store = history.NewMemoryStore(cfg.HistorySize, cfg.HistoryTTL)
	if cfg.RedisEnabled() {
		rdb, err = connectRedis(cfg)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		hist = history.NewRedisStore(rdb, cfg.HistorySize, cfg.HistoryTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		log.Println("[redis] connected")
	}

	// --- Postgres (optional): audit statistics ---
	var queue *auditqueue.Queue
	var auditSto *auditstore.Store
	if cfg.DatabaseURL != "" {
		db, err := connectDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()
		auditSto = auditstore.New(db)
		if err := auditSto.EnsureSchema(ctx); err != nil {
			log.Fatalf("audit schema: %v", err)
		}
		queue = auditqueue.Start(auditSto, cfg.AuditQueueBuffer, cfg.AuditQueueWorkers)
		maintenance.StartAuditRetention(ctx, auditSto, cfg.AuditRetentionDays, cfg.AuditRetentionAt, cfg.AuditRetentionTZ)
		checks["postgres"] = db.PingContext
		log.Println("[audit] enabled")
	}

	hasher := password.NewHasher(password.ParamsFromConfig(cfg))
	pwH := passwords.NewHandler(hist, auditor(queue), hasher, cfg.MaxGenerateLength)

	proxies, err := mw.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		log.Fatalf("config: TRUSTED_PROXIES: %v", err)
	}
	deps := router.Deps{Passwords: pwH, Checks: checks}
	if rdb != nil {
		deps.Limit = mw.NewTokenBucket(rdb, cfg.RateLimitRPS, cfg.RateLimitBurst, mw.PerIPKey("tb", proxies)).Middleware
		deps.VerifyLimit = mw.FixedWindow(rdb, cfg.VerifyMax, cfg.VerifyWindow, mw.PerIPKey("verify", proxies))
	}
	mux := router.Router(deps)

	adminH := admin.NewHandler(nil, nil, nil, nil)
	if rdb != nil {
		adminH.RDB = rdb
	}
	if auditSto != nil {
		adminH.Sto = auditSto
		adminH.Queue = queue
	}
	if cfg.S3Enabled() {
		reports, err := connectS3(ctx, cfg)
		if err != nil {
			log.Fatalf("s3: %v", err)
		}
		adminH.Reports = reports
		log.Printf("[reports] exporting to bucket %s", cfg.S3Bucket)
	}
	router.MountAdmin(mux, signer, adminH)

	handler := mw.Chain(mux,
		mw.RequestID,
		mw.Recovery,
		mw.Cors(cfg.CORSOrigins),
		mw.ResponseTime,
		mw.SecurityHeaders(cfg.TLSEnabled()),
		mw.BodySizeLimit(cfg.MaxBodySize),
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	go func() {
		log.Println("Server is running on", cfg.Addr)
		var err error
		if cfg.TLSEnabled() {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalln("Error starting server:", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	queue.Shutdown() // flush pending audit events before the DB closes
}

// auditor keeps a nil queue from becoming a non-nil interface.
func auditor(q *auditqueue.Queue) passwords.Auditor {
	if q == nil {
		return nil
	}
	return q
}
