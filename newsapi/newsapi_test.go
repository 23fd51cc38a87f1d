package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server, key string) *Client {
	c := NewClient(key, time.Second)
	c.baseURL = srv.URL + "/v2/everything"
	c.httpClient = srv.Client()
	return c
}

func TestEverything(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 1,
		"articles": []map[string]interface{}{
			{
				"source":      map[string]interface{}{"id": "bbc-news", "name": "BBC News"},
				"author":      "BBC",
				"title":       "Glaciers retreat faster than expected",
				"description": "New survey data shows accelerated loss.",
				"url":         "https://example.com/glaciers",
				"urlToImage":  "https://example.com/glaciers.jpg",
				"publishedAt": "2024-05-17T09:30:00Z",
			},
		},
	}

	var query, pageSize, key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("q")
		pageSize = r.URL.Query().Get("pageSize")
		key = r.URL.Query().Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	articles, err := newTestClient(srv, "secret").Everything(context.Background(), "Climate Change", 1)
	require.NoError(t, err)
	assert.Equal(t, "Climate Change", query)
	assert.Equal(t, "1", pageSize)
	assert.Equal(t, "secret", key)

	require.Len(t, articles, 1)
	a := articles[0]
	assert.Equal(t, "Glaciers retreat faster than expected", a.Title)
	assert.Equal(t, "New survey data shows accelerated loss.", a.Description)
	assert.Equal(t, "https://example.com/glaciers.jpg", a.ImageURL)
	assert.Equal(t, "BBC News", a.Source.Name)
	assert.Equal(t, "bbc-news", a.Source.ID)
	assert.Equal(t, "2024-05-17T09:30:00Z", a.Date)
}

func TestEverythingAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "error",
			"code":    "apiKeyInvalid",
			"message": "Your API key is invalid or incorrect.",
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "bad").Everything(context.Background(), "x", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apiKeyInvalid")
}

func TestEverythingNoKey(t *testing.T) {
	_, err := NewClient("", time.Second).Everything(context.Background(), "x", 1)
	assert.Equal(t, errNoKey, err)
}
