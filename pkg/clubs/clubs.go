// Package clubs resolves inbound tenant identifiers to per-club configuration.
package clubs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// ParentBrand is prefixed onto club sender names that don't already carry it.
const ParentBrand = "West Coast Strength"

// ClubConfig is one physical location with its own credentials and sender identity.
type ClubConfig struct {
	ClubName   string `json:"clubName"`
	ClubNumber int    `json:"clubNumber"`
	LocationID string `json:"ghlLocationId"`
	APIKey     string `json:"ghlApiKey"`
	Enabled    bool   `json:"enabled"`

	// Derived at resolution time, never read from the config file.
	FromEmail string `json:"-"`
	FromName  string `json:"-"`
	IsDefault bool   `json:"-"`
}

type configFile struct {
	Clubs []ClubConfig `json:"clubs"`
}

// Load reads the static club list. A missing or unreadable file is not fatal;
// the registry then resolves everything to the default club.
func Load(path string) ([]ClubConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read clubs config: %w", err)
	}
	var cfg configFile
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse clubs config: %w", err)
	}
	return cfg.Clubs, nil
}

// Registry is the process-wide club lookup table. Read-only after construction.
type Registry struct {
	clubs          []ClubConfig
	fallbackAPIKey string
	fromEmail      string
	logger         *slog.Logger
}

func NewRegistry(clubs []ClubConfig, fallbackAPIKey, fromEmail string, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		clubs:          clubs,
		fallbackAPIKey: fallbackAPIKey,
		fromEmail:      fromEmail,
		logger:         logger,
	}
}

// Resolve maps a location ID to its club configuration. Unknown or disabled
// locations fall back to a synthesized default record; this is a degraded path,
// not a failure.
func (r *Registry) Resolve(locationID string) ClubConfig {
	for _, c := range r.clubs {
		if c.LocationID == locationID && c.Enabled {
			c.FromEmail = r.fromEmail
			c.FromName = deriveFromName(c.ClubName)
			c.IsDefault = false
			return c
		}
	}

	r.logger.Warn("No enabled club found for location, using default config", "location_id", locationID)
	return ClubConfig{
		ClubName:   ParentBrand,
		LocationID: locationID,
		APIKey:     r.fallbackAPIKey,
		FromEmail:  r.fromEmail,
		FromName:   ParentBrand,
		IsDefault:  true,
	}
}

// Enabled returns the enabled clubs in config order, for the health endpoint.
func (r *Registry) Enabled() []ClubConfig {
	var out []ClubConfig
	for _, c := range r.clubs {
		if c.Enabled {
			out = append(out, c)
		}
	}
	return out
}

func deriveFromName(clubName string) string {
	if strings.Contains(clubName, ParentBrand) {
		return clubName
	}
	return ParentBrand + " - " + clubName
}
