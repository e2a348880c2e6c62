// Package pdfshift converts rendered HTML documents to PDF via the PDFShift
// API.
package pdfshift

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	httputil "github.com/justinhuttinger/dayone/pkg/infrastructure/http"
)

const defaultBaseURL = "https://api.pdfshift.io"

// Client calls the PDFShift conversion endpoint with basic auth.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			// PDF conversion of a multi-page document can be slow.
			Timeout: 2 * time.Minute,
		},
	}
}

type convertRequest struct {
	Source    string  `json:"source"`
	Landscape bool    `json:"landscape"`
	UsePrint  bool    `json:"use_print"`
	Margin    margins `json:"margin"`
}

type margins struct {
	Top    string `json:"top"`
	Bottom string `json:"bottom"`
	Left   string `json:"left"`
	Right  string `json:"right"`
}

// Convert renders the HTML document to a portrait PDF with print styles and
// half-inch margins, returning the raw PDF bytes.
func (c *Client) Convert(ctx context.Context, html string) ([]byte, error) {
	payload := convertRequest{
		Source:    html,
		Landscape: false,
		UsePrint:  true,
		Margin: margins{
			Top:    "0.5in",
			Bottom: "0.5in",
			Left:   "0.5in",
			Right:  "0.5in",
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal conversion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/v3/convert/pdf", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth("api", c.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("PDFShift request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.ErrorFromResponse(resp); err != nil {
		return nil, fmt.Errorf("PDFShift conversion: %w", err)
	}

	pdf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF body: %w", err)
	}
	return pdf, nil
}
