package config

import (
	"os"
	"testing"
	"time"
)

// clearEnv unsets every variable Load reads so defaults apply.
func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"SERVER_PORT",
		"MINIO_ENDPOINT",
		"MINIO_ACCESS_KEY",
		"MINIO_SECRET_KEY",
		"MINIO_BUCKET",
		"MINIO_REGION",
		"MINIO_USE_SSL",
		"ADMIN_BUCKET",
		"ROOT_PREFIX",
		"CACHE_TTL_MINUTES",
		"PRESIGNED_URL_TTL_MINUTES",
		"LIST_TIMEOUT_SECONDS",
		"ENVIRONMENT",
		"ENROLMENT_API_URL",
		"ENROLMENT_TIMEOUT_SECONDS",
		"MAPPING_BACKEND",
		"MAPPING_FILE",
		"MAPPING_OBJECT_KEY",
		"STUDENT_HEADER",
		"ADMIN_TOKEN",
		"CORS_ALLOWED_ORIGINS",
	}
	for _, v := range envVars {
		_ = os.Unsetenv(v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.RootPrefix != "tentamenbank" {
		t.Errorf("RootPrefix = %q, want tentamenbank", cfg.RootPrefix)
	}
	if cfg.AdminBucket != "acdweb-storage" {
		t.Errorf("AdminBucket = %q, want acdweb-storage", cfg.AdminBucket)
	}
	if cfg.EnrolmentTimeout != 5*time.Second {
		t.Errorf("EnrolmentTimeout = %v, want 5s", cfg.EnrolmentTimeout)
	}
	if cfg.ListTimeout != 15*time.Second {
		t.Errorf("ListTimeout = %v, want 15s", cfg.ListTimeout)
	}
	if cfg.EnrolmentAPIURL != "https://api.datanose.nl" {
		t.Errorf("EnrolmentAPIURL = %q, want https://api.datanose.nl", cfg.EnrolmentAPIURL)
	}
	if cfg.MappingBackend != "file" {
		t.Errorf("MappingBackend = %q, want file", cfg.MappingBackend)
	}
	if cfg.StudentHeader != "X-Student-Number" {
		t.Errorf("StudentHeader = %q, want X-Student-Number", cfg.StudentHeader)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Errorf("CORSAllowedOrigins = %v, want [*]", cfg.CORSAllowedOrigins)
	}
	if cfg.SharedAdminBucket() {
		t.Error("SharedAdminBucket() = true, want false with default buckets")
	}
	if !cfg.CacheEnabled() {
		t.Error("CacheEnabled() = false, want true with the default TTL")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv(t)

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("MINIO_BUCKET", "exams")
	t.Setenv("ADMIN_BUCKET", "exams")
	t.Setenv("ROOT_PREFIX", "/archive/")
	t.Setenv("ENROLMENT_API_URL", "http://registrar.local/")
	t.Setenv("ENROLMENT_TIMEOUT_SECONDS", "2")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg := Load()

	if cfg.ServerPort != "9090" {
		t.Errorf("ServerPort = %q, want 9090", cfg.ServerPort)
	}
	if cfg.RootPrefix != "archive" {
		t.Errorf("RootPrefix = %q, want archive", cfg.RootPrefix)
	}
	if cfg.EnrolmentAPIURL != "http://registrar.local" {
		t.Errorf("EnrolmentAPIURL = %q, want trailing slash trimmed", cfg.EnrolmentAPIURL)
	}
	if cfg.EnrolmentTimeout != 2*time.Second {
		t.Errorf("EnrolmentTimeout = %v, want 2s", cfg.EnrolmentTimeout)
	}
	if !cfg.MinIOUseSSL {
		t.Error("MinIOUseSSL = false, want true")
	}
	if !cfg.SharedAdminBucket() {
		t.Error("SharedAdminBucket() = false, want true")
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowedOrigins) != len(want) {
		t.Fatalf("CORSAllowedOrigins = %v, want %v", cfg.CORSAllowedOrigins, want)
	}
	for i := range want {
		if cfg.CORSAllowedOrigins[i] != want[i] {
			t.Errorf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], want[i])
		}
	}
}

func TestLoad_ZeroCacheTTLDisablesCache(t *testing.T) {
	clearEnv(t)
	t.Setenv("CACHE_TTL_MINUTES", "0")

	cfg := Load()

	if cfg.CacheTTL != 0 {
		t.Errorf("CacheTTL = %v, want 0", cfg.CacheTTL)
	}
	if cfg.CacheEnabled() {
		t.Error("CacheEnabled() = true, want false for a zero TTL")
	}
}
