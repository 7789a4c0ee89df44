package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	TokenStrategy   string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration

	PaymentGatewayAddress string

	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	S3UseSSL    bool
	PresignTTL  time.Duration

	ExportPollInterval time.Duration
	ExportBatchSize    int
	ThumbPollInterval  time.Duration
	ThumbMaxEdge       int
	WorkerPoolSize     int

	MaxUploadBytes      int64
	Currency            string
	PlanDowngradeCredit decimal.Decimal

	RateLimitPerSecond int
	RateLimitBurst     int
	CORSAllowOrigins   []string
}

const (
	defaultRunAddress          = ":8080"
	defaultTokenSecret         = "change-me-in-production"
	defaultTokenStrategy       = "jwt"
	defaultTokenTTL            = 24 * time.Hour
	defaultShutdownTimeout     = 10 * time.Second
	defaultPresignTTL          = 15 * time.Minute
	defaultExportPollInterval  = 3 * time.Second
	defaultExportBatchSize     = 500
	defaultThumbPollInterval   = 2 * time.Second
	defaultThumbMaxEdge        = 512
	defaultWorkerPoolSize      = 4
	defaultMaxUploadBytes      = 32 << 20
	defaultCurrency            = "EUR"
	defaultPlanDowngradeCredit = "5.00"
	defaultRateLimitPerSecond  = 20
	defaultRateLimitBurst      = 40
)

// Load parses configuration from an optional .env file, environment
// variables and flags.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		TokenSecret:        getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenStrategy:      getString(lookup, "TOKEN_STRATEGY", defaultTokenStrategy),
		TokenTTL:           getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		PaymentGatewayAddress: getString(lookup, "PAYMENT_GATEWAY_ADDRESS", ""),
		S3Endpoint:         getString(lookup, "S3_ENDPOINT", ""),
		S3AccessKey:        getString(lookup, "S3_ACCESS_KEY", ""),
		S3SecretKey:        getString(lookup, "S3_SECRET_KEY", ""),
		S3Bucket:           getString(lookup, "S3_BUCKET", "clubadmin"),
		S3UseSSL:           getBool(lookup, "S3_USE_SSL", false),
		PresignTTL:         getDuration(lookup, "PRESIGN_TTL", defaultPresignTTL),
		ExportPollInterval: getDuration(lookup, "EXPORT_POLL_INTERVAL", defaultExportPollInterval),
		ExportBatchSize:    getInt(lookup, "EXPORT_BATCH_SIZE", defaultExportBatchSize),
		ThumbPollInterval:  getDuration(lookup, "THUMB_POLL_INTERVAL", defaultThumbPollInterval),
		ThumbMaxEdge:       getInt(lookup, "THUMB_MAX_EDGE", defaultThumbMaxEdge),
		WorkerPoolSize:     getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		MaxUploadBytes:     getInt64(lookup, "MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		Currency:           getString(lookup, "CURRENCY", defaultCurrency),
		RateLimitPerSecond: getInt(lookup, "RATE_LIMIT_RPS", defaultRateLimitPerSecond),
		RateLimitBurst:     getInt(lookup, "RATE_LIMIT_BURST", defaultRateLimitBurst),
		CORSAllowOrigins:   getList(lookup, "CORS_ALLOW_ORIGINS", nil),
	}

	downgradeCredit := getString(lookup, "PLAN_DOWNGRADE_CREDIT", defaultPlanDowngradeCredit)

	fs := flag.NewFlagSet("clubadmin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		tokenTTLStr        = cfg.TokenTTL.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		exportPollStr      = cfg.ExportPollInterval.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.PaymentGatewayAddress, "g", cfg.PaymentGatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.TokenStrategy, "token-strategy", cfg.TokenStrategy, "Auth token strategy (jwt or hmac)")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Auth token lifetime")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&exportPollStr, "export-poll", exportPollStr, "Interval between export job polls")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent background workers")
	fs.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3-compatible object storage endpoint")
	fs.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "Object storage bucket")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.ExportPollInterval, err = time.ParseDuration(exportPollStr); err != nil {
		return nil, fmt.Errorf("invalid export poll interval: %w", err)
	}

	if cfg.PlanDowngradeCredit, err = decimal.NewFromString(downgradeCredit); err != nil {
		return nil, fmt.Errorf("invalid plan downgrade credit: %w", err)
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.ExportBatchSize <= 0 {
		cfg.ExportBatchSize = defaultExportBatchSize
	}

	if cfg.ExportPollInterval <= 0 {
		cfg.ExportPollInterval = defaultExportPollInterval
	}

	if cfg.ThumbPollInterval <= 0 {
		cfg.ThumbPollInterval = defaultThumbPollInterval
	}

	if cfg.ThumbMaxEdge <= 0 {
		cfg.ThumbMaxEdge = defaultThumbMaxEdge
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	if cfg.TokenStrategy != "jwt" && cfg.TokenStrategy != "hmac" {
		return nil, fmt.Errorf("unknown token strategy %q", cfg.TokenStrategy)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.PaymentGatewayAddress == "" {
		return nil, fmt.Errorf("payment gateway address must be provided")
	}

	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("object storage endpoint must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getList(lookup envLookup, key string, def []string) []string {
	if v, ok := lookup(key); ok && v != "" {
		parts := strings.Split(v, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return def
}
