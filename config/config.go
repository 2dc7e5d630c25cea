package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const (
	BackendLocal      = "local"
	BackendCloudinary = "cloudinary"
)

type Config struct {
	Port string

	MongoURI        string
	MongoDB         string
	MongoCollection string

	AllowedOrigins []string

	StorageBackend string
	UploadDir      string
	PublicBaseURL  string
	MaxUploadBytes int64
	MaxImageWidth  int

	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	// RequireSubcategory makes subcategory mandatory on create.
	RequireSubcategory bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel  string
	LogPretty bool
}

// Load reads .env if present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found; using system environment")
	}
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Port:                get("PORT", ":5000"),
		MongoURI:            get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:             get("MONGO_DB", "blogdb"),
		MongoCollection:     get("MONGO_COLLECTION", "blogs"),
		AllowedOrigins:      splitList(get("ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		StorageBackend:      strings.ToLower(get("STORAGE_BACKEND", BackendLocal)),
		UploadDir:           get("UPLOAD_DIR", "uploads"),
		PublicBaseURL:       strings.TrimRight(get("PUBLIC_BASE_URL", "http://localhost:5000"), "/"),
		CloudinaryURL:       get("CLOUDINARY_URL", ""),
		CloudinaryCloudName: get("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    get("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: get("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    get("CLOUDINARY_FOLDER", "blogs"),
		RedisAddr:           get("REDIS_ADDR", ""),
		RedisPassword:       get("REDIS_PASSWORD", ""),
		LogLevel:            get("LOG_LEVEL", "info"),
	}
	if cfg.Port[0] != ':' {
		cfg.Port = ":" + cfg.Port
	}

	maxMB, err := strconv.Atoi(get("MAX_UPLOAD_MB", "10"))
	if err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_MB: %w", err)
	}
	cfg.MaxUploadBytes = int64(maxMB) << 20

	if cfg.MaxImageWidth, err = strconv.Atoi(get("MAX_IMAGE_WIDTH", "1600")); err != nil {
		return nil, fmt.Errorf("MAX_IMAGE_WIDTH: %w", err)
	}
	if cfg.RedisDB, err = strconv.Atoi(get("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("REDIS_DB: %w", err)
	}
	if cfg.RequireSubcategory, err = strconv.ParseBool(get("REQUIRE_SUBCATEGORY", "false")); err != nil {
		return nil, fmt.Errorf("REQUIRE_SUBCATEGORY: %w", err)
	}
	if cfg.LogPretty, err = strconv.ParseBool(get("LOG_PRETTY", "false")); err != nil {
		return nil, fmt.Errorf("LOG_PRETTY: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendLocal:
		if c.UploadDir == "" {
			return errors.New("UPLOAD_DIR must be set for local storage")
		}
	case BackendCloudinary:
		if c.CloudinaryURL == "" && (c.CloudinaryCloudName == "" || c.CloudinaryAPIKey == "" || c.CloudinaryAPISecret == "") {
			return errors.New("cloudinary storage needs CLOUDINARY_URL or CLOUDINARY_CLOUD_NAME, CLOUDINARY_API_KEY and CLOUDINARY_API_SECRET")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.MaxUploadBytes <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
