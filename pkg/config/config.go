package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API       APIConfig
	Session   SessionConfig
	Dashboard DashboardConfig
	Export    ExportConfig
	Log       LogConfig
	MockAPI   MockAPIConfig
}

// APIConfig points the console at the academy backend.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig controls where the bearer token is persisted and how the
// countdown widget reads it.
type SessionConfig struct {
	CredentialsFile string
	CookieName      string
}

// DashboardConfig tunes the summary poller.
type DashboardConfig struct {
	RefreshInterval time.Duration
	UpcomingLimit   int
}

// ExportConfig controls roster export output.
type ExportConfig struct {
	Dir string
}

type LogConfig struct {
	Level  string
	Format string
}

// MockAPIConfig configures the local fixture server used for development.
type MockAPIConfig struct {
	Port           int
	JWTSecret      string
	JWTExpiry      time.Duration
	AllowedOrigins []string
	AdminEmail     string
	AdminPassword  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			if _, statErr := os.Stat(".env"); statErr == nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("API_TIMEOUT"), 15*time.Second),
	}

	cfg.Session = SessionConfig{
		CredentialsFile: expandHome(v.GetString("CREDENTIALS_FILE")),
		CookieName:      v.GetString("TOKEN_COOKIE_NAME"),
	}

	cfg.Dashboard = DashboardConfig{
		RefreshInterval: parseDuration(v.GetString("DASHBOARD_REFRESH_INTERVAL"), 5*time.Minute),
		UpcomingLimit:   v.GetInt("DASHBOARD_UPCOMING_LIMIT"),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.MockAPI = MockAPIConfig{
		Port:           v.GetInt("MOCKAPI_PORT"),
		JWTSecret:      v.GetString("MOCKAPI_JWT_SECRET"),
		JWTExpiry:      parseDuration(v.GetString("MOCKAPI_JWT_EXPIRATION"), 24*time.Hour),
		AllowedOrigins: splitAndTrim(v.GetString("MOCKAPI_ALLOWED_ORIGINS")),
		AdminEmail:     v.GetString("MOCKAPI_ADMIN_EMAIL"),
		AdminPassword:  v.GetString("MOCKAPI_ADMIN_PASSWORD"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:4000/api")
	v.SetDefault("API_TIMEOUT", "15s")

	v.SetDefault("CREDENTIALS_FILE", "~/.academy-console/token")
	v.SetDefault("TOKEN_COOKIE_NAME", "token")

	v.SetDefault("DASHBOARD_REFRESH_INTERVAL", "5m")
	v.SetDefault("DASHBOARD_UPCOMING_LIMIT", 3)

	v.SetDefault("EXPORT_DIR", "./exports")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("MOCKAPI_PORT", 4000)
	v.SetDefault("MOCKAPI_JWT_SECRET", "dev_secret")
	v.SetDefault("MOCKAPI_JWT_EXPIRATION", "24h")
	v.SetDefault("MOCKAPI_ALLOWED_ORIGINS", "")
	v.SetDefault("MOCKAPI_ADMIN_EMAIL", "admin@academy.local")
	v.SetDefault("MOCKAPI_ADMIN_PASSWORD", "admin123")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
