package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       int
	PublicBase string

	DBDriver string // "sqlite" or "postgres"
	DataDir  string
	DBURL    string // postgres connection string, required when DBDriver is postgres

	AssetsRoot string
	ThumbStore string // "disk" or "memory"

	JWTSecret string
	TokenTTL  time.Duration

	S3Bucket string
	S3Region string

	MaxThumbnailBytes int64
	MaxVideoBytes     int64
	PresignTTL        time.Duration
	FFmpegTimeout     time.Duration
}

func Load() (*Config, error) {
	// Missing .env is fine; real deployments use the environment directly.
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8091"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	s3Bucket := os.Getenv("S3_BUCKET")
	if s3Bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET is required")
	}

	dbDriver := getEnv("DB_DRIVER", "sqlite")
	dbURL := os.Getenv("DATABASE_URL")
	if dbDriver == "postgres" && dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required when DB_DRIVER=postgres")
	}

	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}

	presignTTL, err := time.ParseDuration(getEnv("PRESIGN_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid PRESIGN_TTL: %w", err)
	}

	ffmpegTimeout, err := time.ParseDuration(getEnv("FFMPEG_TIMEOUT", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid FFMPEG_TIMEOUT: %w", err)
	}

	return &Config{
		Port:              port,
		PublicBase:        getEnv("PUBLIC_BASE", fmt.Sprintf("http://localhost:%d", port)),
		DBDriver:          dbDriver,
		DataDir:           getEnv("DATA_DIR", "./data"),
		DBURL:             dbURL,
		AssetsRoot:        getEnv("ASSETS_ROOT", "./assets"),
		ThumbStore:        getEnv("THUMBNAIL_STORE", "disk"),
		JWTSecret:         jwtSecret,
		TokenTTL:          tokenTTL,
		S3Bucket:          s3Bucket,
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		MaxThumbnailBytes: 10 << 20,
		MaxVideoBytes:     1 << 30,
		PresignTTL:        presignTTL,
		FFmpegTimeout:     ffmpegTimeout,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
