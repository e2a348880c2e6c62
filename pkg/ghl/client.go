// Package ghl is a minimal GoHighLevel API client covering contact lookup and
// contact file uploads. Credentials are per-club, so every call takes the
// resolved ClubConfig rather than holding a single token.
package ghl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"time"

	"github.com/justinhuttinger/dayone/pkg/clubs"
	httputil "github.com/justinhuttinger/dayone/pkg/infrastructure/http"
)

const (
	defaultBaseURL = "https://services.leadconnectorhq.com"
	apiVersion     = "2021-07-28"
)

// Contact is the CRM-held profile of the client receiving the program.
type Contact struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	FirstName    string         `json:"firstName"`
	LastName     string         `json:"lastName"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	CustomFields map[string]any `json:"customFields"`
	Tags         []string       `json:"tags"`
	LocationID   string         `json:"locationId"`
	LocationName string         `json:"locationName"`
	ClubNumber   int            `json:"clubNumber"`
}

// Client calls the GoHighLevel REST API.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient returns a client with the production base URL and a bounded
// per-call timeout.
func NewClient() *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type contactEnvelope struct {
	Contact struct {
		ID          string         `json:"id"`
		Name        string         `json:"name"`
		FirstName   string         `json:"firstName"`
		LastName    string         `json:"lastName"`
		Email       string         `json:"email"`
		Phone       string         `json:"phone"`
		CustomField map[string]any `json:"customField"`
		Tags        []string       `json:"tags"`
	} `json:"contact"`
}

// FetchContact retrieves a contact by ID using the club's credentials and
// stamps the club's location identity onto the result.
func (c *Client) FetchContact(ctx context.Context, contactID string, club *clubs.ClubConfig) (*Contact, error) {
	reqURL := fmt.Sprintf("%s/contacts/%s", c.BaseURL, contactID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req, club.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GHL contact fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.ErrorFromResponse(resp); err != nil {
		return nil, fmt.Errorf("GHL contact fetch: %w", err)
	}

	var envelope contactEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode contact response: %w", err)
	}

	contact := &Contact{
		ID:           envelope.Contact.ID,
		Name:         envelope.Contact.Name,
		FirstName:    envelope.Contact.FirstName,
		LastName:     envelope.Contact.LastName,
		Email:        envelope.Contact.Email,
		Phone:        envelope.Contact.Phone,
		CustomFields: envelope.Contact.CustomField,
		Tags:         envelope.Contact.Tags,
		LocationID:   club.LocationID,
		LocationName: club.ClubName,
		ClubNumber:   club.ClubNumber,
	}
	if contact.Name == "" {
		contact.Name = "Client"
	}
	if contact.CustomFields == nil {
		contact.CustomFields = map[string]any{}
	}
	return contact, nil
}

type uploadResponse struct {
	FileURL string `json:"fileUrl"`
	URL     string `json:"url"`
	ID      string `json:"id"`
}

// UploadPDF stores the rendered program against the contact's files and
// returns a shareable URL.
func (c *Client) UploadPDF(ctx context.Context, contactID string, club *clubs.ClubConfig, pdf []byte, contact *Contact) (string, error) {
	filename := fmt.Sprintf("Training_Program_%s_%s.pdf", contact.FirstName, contact.LastName)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", "application/pdf")
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to create multipart field: %w", err)
	}
	if _, err := part.Write(pdf); err != nil {
		return "", fmt.Errorf("failed to write PDF to form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	query := url.Values{
		"contactId":  {contactID},
		"locationId": {club.LocationID},
	}
	reqURL := fmt.Sprintf("%s/files/?%s", c.BaseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setAuthHeaders(req, club.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("GHL upload failed: %w", err)
	}
	defer resp.Body.Close()

	if err := httputil.ErrorFromResponse(resp); err != nil {
		return "", fmt.Errorf("GHL upload: %w", err)
	}

	var uploaded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&uploaded); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}

	switch {
	case uploaded.FileURL != "":
		return uploaded.FileURL, nil
	case uploaded.URL != "":
		return uploaded.URL, nil
	case uploaded.ID != "":
		return fmt.Sprintf("%s/files/%s", c.BaseURL, uploaded.ID), nil
	default:
		return "", fmt.Errorf("could not get file URL from GHL upload response")
	}
}

func (c *Client) setAuthHeaders(req *http.Request, apiKey string) {
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Version", apiVersion)
}
