package remote_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/remote"
)

func TestFetchDeck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"name": "Remote", "flashcards": []}`))
	}))
	defer srv.Close()

	data, err := remote.NewWithHTTPClient(srv.Client()).FetchDeck(context.Background(), srv.URL+"/deck.json")

	require.NoError(t, err)
	assert.JSONEq(t, `{"name": "Remote", "flashcards": []}`, string(data))
}

func TestFetchDeck_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, "gone", http.StatusNotFound)
		case "/huge":
			w.Write([]byte(strings.Repeat("x", remote.MaxDocumentBytes+1)))
		}
	}))
	defer srv.Close()

	tests := []struct {
		name string
		url  string
		code string
	}{
		{name: "relative url", url: "deck.json", code: errors.ErrCodeInvalidArgument},
		{name: "unsupported scheme", url: "file:///etc/passwd", code: errors.ErrCodeInvalidArgument},
		{name: "not found", url: srv.URL + "/missing", code: errors.ErrCodeIO},
		{name: "too large", url: srv.URL + "/huge", code: errors.ErrCodeFormat},
		{name: "unreachable", url: "http://127.0.0.1:1/deck.json", code: errors.ErrCodeIO},
	}

	client := remote.NewWithHTTPClient(srv.Client())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := client.FetchDeck(context.Background(), tt.url)

			assert.Nil(t, data)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
		})
	}
}
