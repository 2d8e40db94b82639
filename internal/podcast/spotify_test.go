package podcast

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpotifyClient_EpisodeInfo(t *testing.T) {
	tokenRequests := 0
	accountsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/token", r.URL.Path)
		username, password, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "client-id", username)
		assert.Equal(t, "client-secret", password)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.FormValue("grant_type"))

		tokenRequests++
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "token-1",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	}))
	defer accountsServer.Close()

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/episodes/ep1", r.URL.Path)
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":         "Episode 1",
			"description":  "desc",
			"release_date": "2025-01-01",
			"images": []map[string]any{
				{"url": "https://img/small.jpg", "width": 64, "height": 64},
				{"url": "https://img/large.jpg", "width": 640, "height": 640},
				{"url": "https://img/medium.jpg", "width": 300, "height": 300},
			},
			"show": map[string]any{
				"name":      "Nihongo con Teppei",
				"publisher": "Teppei",
			},
		})
	}))
	defer apiServer.Close()

	client := NewSpotifyClient("client-id", "client-secret")
	defer client.Close()
	client.SetBaseURLs(apiServer.URL, accountsServer.URL)

	info, err := client.EpisodeInfo(context.Background(), "ep1")
	require.NoError(t, err)
	assert.Equal(t, "Episode 1", info.Name)
	assert.Equal(t, "Nihongo con Teppei", info.ShowName)
	assert.Equal(t, "Teppei", info.ShowPublisher)
	assert.Equal(t, "2025-01-01", info.ReleaseDate)
	assert.Equal(t, "https://img/large.jpg", info.ImageURL, "largest image wins")

	// Second fetch reuses the cached token.
	_, err = client.EpisodeInfo(context.Background(), "ep1")
	require.NoError(t, err)
	assert.Equal(t, 1, tokenRequests)
}

func TestSpotifyClient_EpisodeInfo_TokenRejected(t *testing.T) {
	accountsServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
	}))
	defer accountsServer.Close()

	client := NewSpotifyClient("client-id", "wrong-secret")
	defer client.Close()
	client.SetBaseURLs("http://unused.invalid", accountsServer.URL)

	_, err := client.EpisodeInfo(context.Background(), "ep1")
	assert.Error(t, err)
}
