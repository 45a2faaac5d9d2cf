package main

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"time"

	"github.com/5w1tchy/passkit/internal/config"
	"github.com/5w1tchy/passkit/internal/repository/sqlconnect"
	"github.com/5w1tchy/passkit/internal/storage/s3"
	"github.com/5w1tchy/passkit/internal/validate"
	"github.com/redis/go-redis/v9"
)

func connectRedis(cfg config.Config) (*redis.Client, error) {
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		// full URL, e.g. rediss://default:<token>@host:port
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		rdb = redis.NewClient(opt)
	} else {
		opt := &redis.Options{
			Addr:         cfg.RedisAddr,
			Username:     cfg.RedisUser,
			Password:     cfg.RedisPassword,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		}
		if cfg.RedisPassword != "" {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		rdb = redis.NewClient(opt)
	}

	if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func connectDB(ctx context.Context, dsn string) (*sql.DB, error) {
	return sqlconnect.ConnectDB(ctx, dsn)
}

func connectS3(ctx context.Context, cfg config.Config) (*s3.S3Client, error) {
	return s3.NewR2Client(ctx, s3.Options{
		Endpoint:     cfg.S3Endpoint,
		Region:       cfg.S3Region,
		Bucket:       cfg.S3Bucket,
		AccessKey:    cfg.S3AccessKey,
		SecretKey:    cfg.S3SecretKey,
		UsePathStyle: cfg.S3PathStyle,
	})
}
