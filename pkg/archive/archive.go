package archive

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
)

// Object describes a stored blob.
type Object struct {
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type,omitempty"`
	ModifiedAt  time.Time `json:"modified_at"`
}

// Storage is a flat key/value blob store. Keys use forward slashes.
type Storage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Object, error)
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]Object, error)
}

// Drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

// Config selects and configures the archive driver.
type Config struct {
	Driver         string `env:"ARCHIVE_DRIVER" envDefault:"local"`
	Dir            string `env:"ARCHIVE_DIR" envDefault:"quarantine"`
	Bucket         string `env:"ARCHIVE_S3_BUCKET"`
	Region         string `env:"ARCHIVE_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"ARCHIVE_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"ARCHIVE_S3_SECRET_KEY"`
	Endpoint       string `env:"ARCHIVE_S3_ENDPOINT"`
	ForcePathStyle bool   `env:"ARCHIVE_S3_FORCE_PATH_STYLE" envDefault:"false"`
	Prefix         string `env:"ARCHIVE_S3_PREFIX"`
}

// New builds the storage selected by cfg.Driver.
func New(ctx context.Context, cfg Config, opts ...S3Option) (Storage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocalStorage(cfg.Dir)
	case DriverS3:
		return NewS3Storage(ctx, S3Config{
			Bucket:         cfg.Bucket,
			Region:         cfg.Region,
			AccessKeyID:    cfg.AccessKeyID,
			SecretKey:      cfg.SecretKey,
			Endpoint:       cfg.Endpoint,
			ForcePathStyle: cfg.ForcePathStyle,
			Prefix:         cfg.Prefix,
		}, opts...)
	default:
		return nil, fmt.Errorf("%w: unknown driver %q", ErrInvalidConfig, cfg.Driver)
	}
}

// cleanKey normalises a key and rejects ones that escape the storage root.
func cleanKey(key string) (string, error) {
	key = strings.Trim(strings.TrimSpace(key), "/")
	if key == "" {
		return "", ErrInvalidKey
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return path.Clean(key), nil
}
