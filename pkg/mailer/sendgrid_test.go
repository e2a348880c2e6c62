package mailer

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justinhuttinger/dayone/pkg/clubs"
	"github.com/justinhuttinger/dayone/pkg/ghl"
)

func testClub() *clubs.ClubConfig {
	return &clubs.ClubConfig{
		ClubName:   "West Coast Strength - Salem",
		ClubNumber: 3,
		FromEmail:  "programs@westcoaststrength.com",
		FromName:   "West Coast Strength - Salem",
	}
}

func decodeMessage(t *testing.T, msg *mail.SGMailV3) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(mail.GetRequestBody(msg), &out))
	return out
}

func TestBuildProgramMessage(t *testing.T) {
	contact := &ghl.Contact{Name: "John Smith", FirstName: "John", LastName: "Smith", Email: "john@example.com"}
	msg := buildProgramMessage(contact, testClub(), []byte("pdf-bytes"))
	body := decodeMessage(t, msg)

	from := body["from"].(map[string]any)
	assert.Equal(t, "programs@westcoaststrength.com", from["email"])
	assert.Equal(t, "West Coast Strength - Salem", from["name"])

	assert.Equal(t, "Your Personalized Training Program - John", body["subject"])

	attachments := body["attachments"].([]any)
	require.Len(t, attachments, 1)
	att := attachments[0].(map[string]any)
	assert.Equal(t, "Training_Program_John_Smith.pdf", att["filename"])
	assert.Equal(t, "application/pdf", att["type"])
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("pdf-bytes")), att["content"])

	content := body["content"].([]any)
	require.Len(t, content, 2)
	plain := content[0].(map[string]any)
	assert.Equal(t, "text/plain", plain["type"])
	assert.Contains(t, plain["value"], "Hi John,")
	assert.Contains(t, plain["value"], "West Coast Strength - Salem")
}

func TestBuildErrorMessage(t *testing.T) {
	msg := buildErrorMessage(errors.New("generation blew up"), "contact-123", testClub(),
		"programs@westcoaststrength.com", "justin@westcoaststrength.com")
	body := decodeMessage(t, msg)

	assert.Equal(t, "PT Program Generator Error - West Coast Strength - Salem", body["subject"])

	content := body["content"].([]any)
	require.Len(t, content, 1)
	text := content[0].(map[string]any)["value"].(string)
	assert.Contains(t, text, "contact contact-123")
	assert.Contains(t, text, "(3)")
	assert.Contains(t, text, "generation blew up")
}

func TestSendProgramHitsMailEndpoint(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	m := New("sg-key", "programs@westcoaststrength.com", "justin@westcoaststrength.com")
	m.Host = server.URL

	contact := &ghl.Contact{Name: "John Smith", FirstName: "John", LastName: "Smith", Email: "john@example.com"}
	err := m.SendProgram(context.Background(), contact, testClub(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Bearer sg-key", gotAuth)
}

func TestSendSurfacesRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"errors":[{"message":"bad key"}]}`))
	}))
	defer server.Close()

	m := New("bad", "programs@westcoaststrength.com", "justin@westcoaststrength.com")
	m.Host = server.URL

	err := m.NotifyError(context.Background(), errors.New("x"), "c1", testClub())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
