package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Config holds process configuration read from the environment.
type Config struct {
	Port            string
	BaseURL         string
	ClubsConfigPath string
	LogoPath        string

	GeminiAPIKey string
	GeminiModel  string

	GHLAPIKey      string // fallback credentials used when a club has none
	SendGridAPIKey string
	PDFShiftAPIKey string

	FromEmail  string
	AdminEmail string

	SentryDSN   string
	Environment string

	// AsyncWebhook selects the fire-and-forget webhook discipline. The default
	// synchronous mode blocks the caller until the PDF URL is available.
	AsyncWebhook bool
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:            getenv("PORT", "3000"),
		BaseURL:         getenv("BASE_URL", "https://dayone-xe91.onrender.com"),
		ClubsConfigPath: getenv("CLUBS_CONFIG", "clubs-config.json"),
		LogoPath:        getenv("LOGO_PATH", "templates/logo.png"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getenv("GEMINI_MODEL", "gemini-2.0-flash"),
		GHLAPIKey:       os.Getenv("GHL_API_KEY"),
		SendGridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		PDFShiftAPIKey:  os.Getenv("PDFSHIFT_API_KEY"),
		FromEmail:       getenv("FROM_EMAIL", "programs@westcoaststrength.com"),
		AdminEmail:      getenv("ADMIN_EMAIL", "justin@westcoaststrength.com"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		Environment:     getenv("ENVIRONMENT", "production"),
		AsyncWebhook:    os.Getenv("WEBHOOK_MODE") == "async",
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := GetSlogHandlerOptions(level)
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler).With("service", serviceName)
}

// Validate checks that the credentials every pipeline stage depends on are present.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.SendGridAPIKey == "" {
		missing = append(missing, "SENDGRID_API_KEY")
	}
	if c.PDFShiftAPIKey == "" {
		missing = append(missing, "PDFSHIFT_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}
