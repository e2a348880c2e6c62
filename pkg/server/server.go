// Package server exposes the webhook, health, and success-redirect endpoints.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/justinhuttinger/dayone/pkg/clubs"
	"github.com/justinhuttinger/dayone/pkg/intake"
	"github.com/justinhuttinger/dayone/pkg/urlcache"
)

// Runner executes one full generation for a webhook submission.
type Runner interface {
	Run(ctx context.Context, contactID string, club *clubs.ClubConfig, form intake.FormData) (string, error)
}

// Server holds the request-handling dependencies. Async switches the webhook
// to acknowledge-then-process; the sync mode blocks until the PDF URL exists
// so the trainer's form can redirect to it.
type Server struct {
	Clubs    *clubs.Registry
	Pipeline Runner
	Cache    *urlcache.Cache
	Logger   *slog.Logger
	BaseURL  string
	Async    bool

	// Caps how long a detached async run may keep going.
	AsyncTimeout time.Duration
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/webhook/generate-program", s.handleWebhook)
	r.Get("/health", s.handleHealth)
	r.Get("/program-success/{contactID}", s.handleSuccess)
	return r
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Invalid JSON body"})
		return
	}

	contactID, _ := payload["contact_id"].(string)
	if contactID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing contact_id"})
		return
	}
	locationID := nestedString(payload, "location", "id")
	if locationID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "Missing location.id"})
		return
	}

	club := s.Clubs.Resolve(locationID)
	s.Logger.Info("Processing webhook", "club", club.ClubName, "club_number", club.ClubNumber, "contact_id", contactID)

	form := intake.Map(payload)

	if s.Async {
		// Acknowledge before the slow work; CRM webhooks time out quickly.
		writeJSON(w, http.StatusOK, map[string]any{
			"message":   "Program generation started",
			"club":      club.ClubName,
			"contactId": contactID,
		})
		go s.runDetached(contactID, &club, form)
		return
	}

	pdfURL, err := s.Pipeline.Run(r.Context(), contactID, &club, form)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	s.Cache.Put(contactID, pdfURL)
	writeJSON(w, http.StatusOK, map[string]any{
		"message":     "Program generated successfully",
		"club":        club.ClubName,
		"contactId":   contactID,
		"pdfUrl":      pdfURL,
		"redirectUrl": fmt.Sprintf("%s/program-success/%s", s.BaseURL, contactID),
		"success":     true,
	})
}

func (s *Server) runDetached(contactID string, club *clubs.ClubConfig, form intake.FormData) {
	timeout := s.AsyncTimeout
	if timeout == 0 {
		timeout = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// The pipeline already notifies the admin; nothing else to do on error.
	if _, err := s.Pipeline.Run(ctx, contactID, club, form); err != nil {
		s.Logger.Error("Detached run failed", "contact_id", contactID, "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	enabled := s.Clubs.Enabled()
	clubList := make([]map[string]any, 0, len(enabled))
	for _, c := range enabled {
		clubList = append(clubList, map[string]any{
			"name":       c.ClubName,
			"clubNumber": c.ClubNumber,
			"locationId": c.LocationID,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"service":      "PT Program Generator",
		"enabledClubs": len(enabled),
		"clubs":        clubList,
	})
}

func (s *Server) handleSuccess(w http.ResponseWriter, r *http.Request) {
	contactID := chi.URLParam(r, "contactID")
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	pdfURL, ok := s.Cache.Get(contactID)
	if !ok {
		fmt.Fprint(w, expiredPage)
		return
	}
	fmt.Fprintf(w, redirectPage, html.EscapeString(pdfURL), html.EscapeString(pdfURL), html.EscapeString(pdfURL))
}

const expiredPage = `<html>
  <head><title>Program Generated</title></head>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h1>&#9989; Program Generated!</h1>
    <p>Your personalized training program has been emailed to the client.</p>
    <p style="color: #666; font-size: 14px; margin-top: 30px;">The direct link has expired. Please check the client's email or contact files in GHL.</p>
  </body>
</html>`

const redirectPage = `<html>
  <head>
    <title>Program Generated</title>
    <meta http-equiv="refresh" content="1;url=%s">
  </head>
  <body style="font-family: Arial, sans-serif; text-align: center; padding: 50px;">
    <h1>&#9989; Your Program is Ready!</h1>
    <p>Opening your personalized training program...</p>
    <p style="color: #666; font-size: 14px;">If it doesn't open automatically, <a href="%s" style="color: #E31E24; font-weight: bold;">click here</a></p>
    <script>
      setTimeout(() => {
        window.location.href = "%s";
      }, 500);
    </script>
  </body>
</html>`

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func nestedString(payload map[string]any, keys ...string) string {
	current := payload
	for i, key := range keys {
		if i == len(keys)-1 {
			v, _ := current[key].(string)
			return v
		}
		next, ok := current[key].(map[string]any)
		if !ok {
			return ""
		}
		current = next
	}
	return ""
}
