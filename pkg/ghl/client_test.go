package ghl

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinhuttinger/dayone/pkg/clubs"
)

func testClub() *clubs.ClubConfig {
	return &clubs.ClubConfig{
		ClubName:   "Salem",
		ClubNumber: 101,
		LocationID: "loc-salem",
		APIKey:     "test-key",
	}
}

func newTestClient(serverURL string) *Client {
	c := NewClient()
	c.BaseURL = serverURL
	return c
}

func TestFetchContact(t *testing.T) {
	t.Run("maps contact and stamps club identity", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/contacts/contact-1", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			assert.Equal(t, "2021-07-28", r.Header.Get("Version"))
			json.NewEncoder(w).Encode(map[string]any{
				"contact": map[string]any{
					"id":        "contact-1",
					"name":      "John Smith",
					"firstName": "John",
					"lastName":  "Smith",
					"email":     "john@example.com",
					"phone":     "555-0123",
					"tags":      []string{"pt-intake"},
				},
			})
		}))
		defer server.Close()

		contact, err := newTestClient(server.URL).FetchContact(context.Background(), "contact-1", testClub())
		require.NoError(t, err)
		assert.Equal(t, "John", contact.FirstName)
		assert.Equal(t, "john@example.com", contact.Email)
		assert.Equal(t, "loc-salem", contact.LocationID)
		assert.Equal(t, "Salem", contact.LocationName)
		assert.Equal(t, 101, contact.ClubNumber)
		assert.NotNil(t, contact.CustomFields)
	})

	t.Run("defaults missing name to Client", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{
				"contact": map[string]any{"id": "contact-1", "email": "a@b.com"},
			})
		}))
		defer server.Close()

		contact, err := newTestClient(server.URL).FetchContact(context.Background(), "contact-1", testClub())
		require.NoError(t, err)
		assert.Equal(t, "Client", contact.Name)
	})

	t.Run("surfaces API errors with body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"msg":"invalid token"}`))
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).FetchContact(context.Background(), "contact-1", testClub())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid token")
	})
}

func TestUploadPDF(t *testing.T) {
	contact := &Contact{FirstName: "John", LastName: "Smith"}

	t.Run("uploads multipart and returns fileUrl", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/files/", r.URL.Path)
			assert.Equal(t, "contact-1", r.URL.Query().Get("contactId"))
			assert.Equal(t, "loc-salem", r.URL.Query().Get("locationId"))

			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()
			assert.Equal(t, "Training_Program_John_Smith.pdf", header.Filename)
			assert.Equal(t, "application/pdf", header.Header.Get("Content-Type"))

			json.NewEncoder(w).Encode(map[string]any{"fileUrl": "https://files.example.com/program.pdf"})
		}))
		defer server.Close()

		url, err := newTestClient(server.URL).UploadPDF(context.Background(), "contact-1", testClub(), []byte("%PDF-1.4"), contact)
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/program.pdf", url)
	})

	t.Run("falls back to url field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"url": "https://files.example.com/alt.pdf"})
		}))
		defer server.Close()

		url, err := newTestClient(server.URL).UploadPDF(context.Background(), "contact-1", testClub(), nil, contact)
		require.NoError(t, err)
		assert.Equal(t, "https://files.example.com/alt.pdf", url)
	})

	t.Run("synthesizes URL from bare id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"id": "file-123"})
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		url, err := client.UploadPDF(context.Background(), "contact-1", testClub(), nil, contact)
		require.NoError(t, err)
		assert.Equal(t, client.BaseURL+"/files/file-123", url)
	})

	t.Run("errors when no URL or id present", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{})
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).UploadPDF(context.Background(), "contact-1", testClub(), nil, contact)
		assert.Error(t, err)
	})
}
