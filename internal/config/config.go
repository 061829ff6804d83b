// internal/config/config.go
package config

import (
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	ClientURL   string

	JWTSecret           string
	JWTExpiresInSeconds int64

	StorageDriver        string
	UploadDir            string
	PublicUploadBaseURL  string
	MaxUploadFiles       int
	MaxUploadFileSize    int64
	MaxMediaItems        int
	MaxImageSize         int64
	MaxVideoSize         int64

	LogDir           string
	LogRetentionDays int
}

const (
	StorageDriverDisk = "disk"
	StorageDriverS3   = "s3"
)

func Load() *Config {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		host := getEnv("PSQL_HOST", "localhost")
		port := getEnv("PSQL_PORT", "5432")
		user := getEnv("PSQL_USER", "postgres")
		password := getEnv("PSQL_PASSWORD", "postgres")
		dbName := getEnv("PSQL_DB_NAME", "classifieds")

		u := &url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(user, password),
			Host:   host + ":" + port,
			Path:   dbName,
		}
		q := u.Query()
		q.Set("sslmode", "disable")
		u.RawQuery = q.Encode()
		databaseURL = u.String()
	}

	// NODE_ENV is what the front end deployment already sets.
	environment := getEnv("NODE_ENV", getEnv("ENVIRONMENT", "development"))

	return &Config{
		Port:        getEnv("PORT", "5000"),
		Environment: environment,
		DatabaseURL: databaseURL,
		ClientURL:   getEnv("CLIENT_URL", "http://localhost:3000"),

		JWTSecret:           os.Getenv("JWT_SECRET"),
		JWTExpiresInSeconds: getEnvInt64("JWT_EXPIRES_IN_SECONDS", 86400),

		StorageDriver:       strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverDisk)),
		UploadDir:           getEnv("UPLOAD_DIR", "uploads"),
		PublicUploadBaseURL: getEnv("PUBLIC_UPLOAD_BASE_URL", "/uploads"),
		MaxUploadFiles:      int(getEnvInt64("MAX_UPLOAD_FILES", 10)),
		MaxUploadFileSize:   getEnvInt64("MAX_UPLOAD_FILE_SIZE", 50<<20),
		MaxMediaItems:       int(getEnvInt64("MAX_MEDIA_ITEMS", 10)),
		MaxImageSize:        getEnvInt64("MAX_IMAGE_SIZE", 10<<20),
		MaxVideoSize:        getEnvInt64("MAX_VIDEO_SIZE", 50<<20),

		LogDir:           os.Getenv("LOG_DIR"),
		LogRetentionDays: int(getEnvInt64("LOG_RETENTION_DAYS", 7)),
	}
}

// IsProduction reports whether error bodies should hide internal detail.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}
