//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
)

type fakeSong struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	PrimaryArtists string   `json:"primaryArtists"`
	Image          []string `json:"image"`
	VideoURL       string   `json:"videoUrl"`
}

// Queries the fake search API answers specially
const (
	queryNoSongs  = "silence"
	queryRejected = "forbidden"
	queryBroken   = "broken"
)

// StartFakeAPI serves canned search answers and points the app at it
func (tf *TUITestFramework) StartFakeAPI() {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/search", func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		switch query {
		case queryBroken:
			http.Error(w, "upstream down", http.StatusBadGateway)
		case queryRejected:
			_ = json.NewEncoder(w).Encode(map[string]any{"status": false, "message": "Query not allowed"})
		case queryNoSongs:
			_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "songs": []fakeSong{}})
		default:
			songs := []fakeSong{
				{ID: "a1", Name: query + " morning", PrimaryArtists: "First Artist", Image: []string{"https://img/a1.jpg"}, VideoURL: "https://www.youtube.com/watch?v=a1"},
				{ID: "b2", Name: query + " evening", PrimaryArtists: "Second Artist", VideoURL: "https://www.youtube.com/watch?v=b2"},
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"status": true, "songs": songs})
		}
	})
	srv := httptest.NewServer(mux)
	tf.t.Cleanup(srv.Close)
	tf.apiURL = srv.URL
}

// CreateTestWorkspace creates an isolated home with a config file
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	dir, err := os.MkdirTemp("", "musicstream-e2e-*")
	if err != nil {
		return "", err
	}
	tf.workspace = dir

	configDir := filepath.Join(dir, "musicstream")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return "", err
	}
	config := fmt.Sprintf(`version = 1

[search]
debounce = "50ms"
tags = ["Yoga Music", "Classical", "Meditation"]

[log]
file = %q
level = "debug"
`, filepath.Join(dir, "musicstream.log"))
	if err := os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(config), 0644); err != nil {
		return "", err
	}
	return dir, nil
}

// ConfigPath returns the config file inside the workspace
func (tf *TUITestFramework) ConfigPath() string {
	return filepath.Join(tf.workspace, "musicstream", "config.toml")
}
