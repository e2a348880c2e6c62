package httputil

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestErrorFromResponse(t *testing.T) {
	t.Run("success response returns nil", func(t *testing.T) {
		assert.NoError(t, ErrorFromResponse(response(200, "ok")))
	})

	t.Run("error response includes body", func(t *testing.T) {
		err := ErrorFromResponse(response(422, `{"error":"bad contact"}`))
		require.Error(t, err)

		httpErr, ok := err.(*HTTPError)
		require.True(t, ok)
		assert.Equal(t, 422, httpErr.StatusCode)
		assert.Contains(t, err.Error(), "bad contact")
		assert.Contains(t, err.Error(), "422")
	})

	t.Run("long body is truncated", func(t *testing.T) {
		err := ErrorFromResponse(response(500, strings.Repeat("x", MaxErrorBodySize+100)))
		require.Error(t, err)
		httpErr := err.(*HTTPError)
		assert.Len(t, httpErr.Body, MaxErrorBodySize+3) // "..." suffix
	})

	t.Run("empty body", func(t *testing.T) {
		err := ErrorFromResponse(response(404, ""))
		require.Error(t, err)
		assert.Equal(t, "Not Found (status 404)", err.Error())
	})
}
