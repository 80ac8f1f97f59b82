// Package config loads application configuration from config/app.json and
// .env, with sane defaults for local development. Values are resolved once
// and cached; every accessor is safe for concurrent use.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	defaultMongoURI   = "mongodb://localhost:27017"
	defaultMongoDB    = "dressshop"
	defaultRedisAddr  = "localhost:6379"
	defaultJWTSecret  = "change-me-in-production"
	defaultAppPort    = "5000"
	defaultAppEnv     = "local"
	defaultUploadsDir = "uploads"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"MONGO_URI":       defaultMongoURI,
		"MONGO_DB":        defaultMongoDB,
		"REDIS_ADDR":      defaultRedisAddr,
		"REDIS_PASSWORD":  "",
		"JWT_SECRET":      defaultJWTSecret,
		"APP_PORT":        defaultAppPort,
		"APP_ENV":         defaultAppEnv,
		"UPLOADS_DIR":     defaultUploadsDir,
		"UPLOAD_BASE_URL": "",
	}
}

func MongoURI() string {
	_ = Load()
	return get("MONGO_URI", defaultMongoURI)
}

func MongoDB() string {
	_ = Load()
	return get("MONGO_DB", defaultMongoDB)
}

func RedisAddr() string {
	_ = Load()
	return get("REDIS_ADDR", defaultRedisAddr)
}

func RedisPassword() string {
	_ = Load()
	return get("REDIS_PASSWORD", "")
}

func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func AppPort() string {
	_ = Load()
	return get("APP_PORT", defaultAppPort)
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// IsProduction reports whether the app runs in a production environment.
// The dev-only admin bootstrap endpoint is disabled when this is true.
func IsProduction() bool {
	env := strings.ToLower(AppEnv())
	return env == "production" || env == "prod"
}

// ── Uploads / storage ────────────────────────────────────────────────────────

func UploadsDir() string {
	_ = Load()
	return get("UPLOADS_DIR", defaultUploadsDir)
}

// UploadBaseURL is the public prefix for uploaded image URLs. Empty means
// the URL is derived from the incoming request's host.
func UploadBaseURL() string {
	_ = Load()
	return strings.TrimRight(get("UPLOAD_BASE_URL", ""), "/")
}

func StorageDefault() string  { _ = Load(); return get("STORAGE_DISK", "local") }
func StorageS3Bucket() string { _ = Load(); return get("S3_BUCKET", "") }
func StorageS3Region() string { _ = Load(); return get("S3_REGION", "us-east-1") }
func StorageS3Key() string    { _ = Load(); return get("S3_KEY", "") }
func StorageS3Secret() string { _ = Load(); return get("S3_SECRET", "") }

// S3 endpoint override for MinIO / R2 / Spaces; empty for real AWS.
func StorageS3Endpoint() string { _ = Load(); return get("S3_ENDPOINT", "") }
func StorageS3URL() string      { _ = Load(); return get("S3_URL", "") }

// ── Payment gateway ──────────────────────────────────────────────────────────

func RazorpayKeyID() string  { _ = Load(); return get("RAZORPAY_KEY_ID", "") }
func RazorpaySecret() string { _ = Load(); return get("RAZORPAY_KEY_SECRET", "") }

// ── Admin bootstrap ──────────────────────────────────────────────────────────

func AdminEmail() string    { _ = Load(); return get("ADMIN_EMAIL", "admin@dressshop.com") }
func AdminPassword() string { _ = Load(); return get("ADMIN_PASSWORD", "Admin@123") }

// ── File loading ─────────────────────────────────────────────────────────────

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}
