package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort      string
	MinIOEndpoint   string
	MinIOAccessKey  string
	MinIOSecretKey  string
	MinIOBucket     string
	MinIORegion     string
	MinIOUseSSL     bool
	AdminBucket     string // Bucket the admin mapping tool lists; historically differs from MinIOBucket
	RootPrefix      string // Top-level folder holding <study>/<subject>/<file>
	CacheTTL        time.Duration
	PresignedURLTTL time.Duration
	ListTimeout     time.Duration
	Environment     string

	EnrolmentAPIURL  string
	EnrolmentTimeout time.Duration

	MappingBackend   string // "file" or "s3"
	MappingFile      string
	MappingObjectKey string

	StudentHeader      string
	AdminToken         string
	CORSAllowedOrigins []string
}

func Load() *Config {
	cacheMinutes, _ := strconv.Atoi(getEnv("CACHE_TTL_MINUTES", "10"))
	presignedMinutes, _ := strconv.Atoi(getEnv("PRESIGNED_URL_TTL_MINUTES", "15"))
	listSeconds, _ := strconv.Atoi(getEnv("LIST_TIMEOUT_SECONDS", "15"))
	enrolmentSeconds, _ := strconv.Atoi(getEnv("ENROLMENT_TIMEOUT_SECONDS", "5"))
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		MinIOEndpoint:   getEnv("MINIO_ENDPOINT", "minio:9000"),
		MinIOAccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinIOSecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinIOBucket:     getEnv("MINIO_BUCKET", "tentamenbank"),
		MinIORegion:     getEnv("MINIO_REGION", ""),
		MinIOUseSSL:     useSSL,
		AdminBucket:     getEnv("ADMIN_BUCKET", "acdweb-storage"),
		RootPrefix:      strings.Trim(getEnv("ROOT_PREFIX", "tentamenbank"), "/"),
		CacheTTL:        time.Duration(cacheMinutes) * time.Minute,
		PresignedURLTTL: time.Duration(presignedMinutes) * time.Minute,
		ListTimeout:     time.Duration(listSeconds) * time.Second,
		Environment:     getEnv("ENVIRONMENT", "development"),

		EnrolmentAPIURL:  strings.TrimSuffix(getEnv("ENROLMENT_API_URL", "https://api.datanose.nl"), "/"),
		EnrolmentTimeout: time.Duration(enrolmentSeconds) * time.Second,

		MappingBackend:   getEnv("MAPPING_BACKEND", "file"),
		MappingFile:      getEnv("MAPPING_FILE", "data/tentamenbank_course_ids.json"),
		MappingObjectKey: getEnv("MAPPING_OBJECT_KEY", "config/tentamenbank_course_ids.json"),

		StudentHeader:      getEnv("STUDENT_HEADER", "X-Student-Number"),
		AdminToken:         getEnv("ADMIN_TOKEN", ""),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}
}

// CacheEnabled reports whether listings and enrolments are cached.
// A zero TTL would make go-cache keep entries forever, so it disables caching instead.
func (c *Config) CacheEnabled() bool {
	return c.CacheTTL > 0
}

// SharedAdminBucket reports whether the admin tool lists the same bucket as the catalog.
func (c *Config) SharedAdminBucket() bool {
	return c.AdminBucket == c.MinIOBucket
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
