package main

import (
	"encoding/base64"
	"net/http"
	"os"
	"time"

	"github.com/justinhuttinger/dayone/pkg/bootstrap"
	"github.com/justinhuttinger/dayone/pkg/clubs"
	"github.com/justinhuttinger/dayone/pkg/generate"
	"github.com/justinhuttinger/dayone/pkg/ghl"
	"github.com/justinhuttinger/dayone/pkg/infrastructure/sentry"
	"github.com/justinhuttinger/dayone/pkg/mailer"
	"github.com/justinhuttinger/dayone/pkg/pdfshift"
	"github.com/justinhuttinger/dayone/pkg/pipeline"
	"github.com/justinhuttinger/dayone/pkg/program"
	"github.com/justinhuttinger/dayone/pkg/server"
	"github.com/justinhuttinger/dayone/pkg/urlcache"
)

func main() {
	cfg := bootstrap.LoadConfig()
	logger := bootstrap.NewLogger("pt-program-generator")

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := sentry.Init(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.Environment,
		ServerName:  "pt-program-generator",
	}, logger); err != nil {
		logger.Error("Sentry initialization failed", "error", err)
		os.Exit(1)
	}
	defer sentry.Flush(2 * time.Second)

	clubList, err := clubs.Load(cfg.ClubsConfigPath)
	if err != nil {
		// Run on the fallback credentials alone rather than refuse to start.
		logger.Warn("Could not load clubs config, using environment fallback only", "error", err)
	} else {
		logger.Info("Loaded clubs configuration", "clubs", len(clubList))
	}
	registry := clubs.NewRegistry(clubList, cfg.GHLAPIKey, cfg.FromEmail, logger)

	logoBase64 := ""
	if logoBytes, err := os.ReadFile(cfg.LogoPath); err != nil {
		logger.Warn("Logo not found, rendering without it", "path", cfg.LogoPath)
	} else {
		logoBase64 = base64.StdEncoding.EncodeToString(logoBytes)
	}

	p := &pipeline.Pipeline{
		Contacts:   ghl.NewClient(),
		Generator:  generate.NewGeminiGenerator(cfg.GeminiAPIKey, cfg.GeminiModel),
		Renderer:   program.NewRenderer(logoBase64),
		Converter:  pdfshift.NewClient(cfg.PDFShiftAPIKey),
		Uploader:   ghl.NewClient(),
		Mailer:     mailer.New(cfg.SendGridAPIKey, cfg.FromEmail, cfg.AdminEmail),
		Logger:     logger,
		SkipUpload: cfg.AsyncWebhook,
	}

	srv := &server.Server{
		Clubs:    registry,
		Pipeline: p,
		Cache:    urlcache.New(),
		Logger:   logger,
		BaseURL:  cfg.BaseURL,
		Async:    cfg.AsyncWebhook,
	}

	logger.Info("Starting server", "port", cfg.Port, "async_webhook", cfg.AsyncWebhook)
	if err := http.ListenAndServe(":"+cfg.Port, srv.Router()); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}
