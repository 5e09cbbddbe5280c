// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, the database path, token secrets and
// lifetimes, rate limiting, media-host credentials, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings. The API uses
// cookie-based authentication, so allowed origins must be explicit whenever
// credentials are enabled.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// SecurityConfig defines security-related settings such as HSTS and the
// Secure attribute on auth cookies.
type SecurityConfig struct {
	EnableHSTS    bool
	HSTSMaxAge    time.Duration
	SecureCookies bool
}

// TokenConfig holds the signing secrets and lifetimes for the access and
// refresh credentials. Access tokens are short-lived (minutes); refresh
// tokens are long-lived (days) and persisted per user.
type TokenConfig struct {
	AccessSecret  string        // ACCESS_TOKEN_SECRET
	AccessExpiry  time.Duration // ACCESS_TOKEN_EXPIRY (e.g. 15m)
	RefreshSecret string        // REFRESH_TOKEN_SECRET
	RefreshExpiry time.Duration // REFRESH_TOKEN_EXPIRY (e.g. 240h)
}

// MediaConfig holds settings for the external media host that stores video
// files, thumbnails, and profile images.
type MediaConfig struct {
	CloudName string // MEDIA_CLOUD_NAME
	APIKey    string // MEDIA_API_KEY
	APISecret string // MEDIA_API_SECRET
	BaseURL   string // MEDIA_BASE_URL (override for self-hosted/test servers)
	TempDir   string // MEDIA_TEMP_DIR for multipart spool files
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // generous: uploads are awaited inline
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	MaxUploadBytes    int64         // cap for multipart video uploads
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	// SwaggerEnabled mounts the Swagger UI at /swagger/*any. The UI loads
	// its doc.json from a swag-generated docs package; run `swag init` and
	// import the docs package from cmd/server before enabling in production,
	// otherwise the UI renders but the spec fetch 404s.
	SwaggerEnabled bool
	APIBasePath    string // base path for API routes

	// App
	DBPath string // SQLite path

	// Auth
	Tokens TokenConfig

	// Media host
	Media MediaConfig

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 120*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		MaxUploadBytes:    getint64("MAX_UPLOAD_BYTES", 200<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// App
		DBPath: getenv("DB_PATH", "app.db"),

		// Auth
		Tokens: TokenConfig{
			AccessSecret:  getenv("ACCESS_TOKEN_SECRET", ""),
			AccessExpiry:  getdur("ACCESS_TOKEN_EXPIRY", 15*time.Minute),
			RefreshSecret: getenv("REFRESH_TOKEN_SECRET", ""),
			RefreshExpiry: getdur("REFRESH_TOKEN_EXPIRY", 10*24*time.Hour),
		},

		// Media host
		Media: MediaConfig{
			CloudName: getenv("MEDIA_CLOUD_NAME", ""),
			APIKey:    getenv("MEDIA_API_KEY", ""),
			APISecret: getenv("MEDIA_API_SECRET", ""),
			BaseURL:   getenv("MEDIA_BASE_URL", ""),
			TempDir:   getenv("MEDIA_TEMP_DIR", "public/temp"),
		},

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins:   splitCSV(getenv("CORS_ORIGIN", "")),
			AllowCredentials: getbool("CORS_CREDENTIALS", true),
		},
		Security: SecurityConfig{
			EnableHSTS:    getbool("ENABLE_HSTS", false),
			HSTSMaxAge:    getdur("HSTS_MAX_AGE", 180*24*time.Hour),
			SecureCookies: getbool("SECURE_COOKIES", true),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-video-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.MaxUploadBytes <= 0 {
		return cfg, errors.New("MAX_UPLOAD_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if strings.TrimSpace(cfg.Tokens.AccessSecret) == "" {
		return cfg, errors.New("ACCESS_TOKEN_SECRET must not be empty")
	}
	if strings.TrimSpace(cfg.Tokens.RefreshSecret) == "" {
		return cfg, errors.New("REFRESH_TOKEN_SECRET must not be empty")
	}
	if cfg.Tokens.AccessExpiry <= 0 || cfg.Tokens.RefreshExpiry <= 0 {
		return cfg, errors.New("token expiries must be positive durations")
	}
	if cfg.Tokens.AccessExpiry >= cfg.Tokens.RefreshExpiry {
		return cfg, errors.New("ACCESS_TOKEN_EXPIRY must be shorter than REFRESH_TOKEN_EXPIRY")
	}
	if strings.TrimSpace(cfg.Media.TempDir) == "" {
		return cfg, errors.New("MEDIA_TEMP_DIR must not be empty")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.CORS.AllowCredentials && len(cfg.CORS.AllowedOrigins) == 0 {
		return cfg, errors.New("CORS_ORIGIN must be set when CORS_CREDENTIALS is enabled")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getint64(k string, def int64) int64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
