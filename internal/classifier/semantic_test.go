package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSemanticClientScore(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/score" {
			t.Errorf("path = %q, want /score", r.URL.Path)
		}
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		gotText = req.Text

		json.NewEncoder(w).Encode(scoreResponse{
			Score:     72.5,
			BestMatch: "IT infrastructure assessment and modernization",
		})
	}))
	defer server.Close()

	client := NewSemanticClient(server.URL)
	score, match, err := client.Score(context.Background(), "Network security audit for county government")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 72.5 {
		t.Errorf("score = %v, want 72.5", score)
	}
	if match != "IT infrastructure assessment and modernization" {
		t.Errorf("match = %q", match)
	}
	if gotText != "Network security audit for county government" {
		t.Errorf("sent text = %q", gotText)
	}
}

// Long solicitations are truncated before they go over the wire.
func TestSemanticClientScore_Truncates(t *testing.T) {
	var gotLen int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotLen = len(req.Text)
		json.NewEncoder(w).Encode(scoreResponse{Score: 10})
	}))
	defer server.Close()

	client := NewSemanticClient(server.URL)
	if _, _, err := client.Score(context.Background(), strings.Repeat("x", 5000)); err != nil {
		t.Fatalf("Score: %v", err)
	}
	if gotLen != 2000 {
		t.Errorf("sent %d chars, want 2000", gotLen)
	}
}

func TestSemanticClientScore_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewSemanticClient(server.URL)
	_, _, err := client.Score(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error for 503 response")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("err = %v, want status in message", err)
	}
}

func TestSemanticClientHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("path = %q, want /health", r.URL.Path)
		}
		json.NewEncoder(w).Encode(HealthResponse{Status: "ok", ModelLoaded: true})
	}))
	defer server.Close()

	client := NewSemanticClient(server.URL)
	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Status != "ok" || !health.ModelLoaded {
		t.Errorf("health = %+v", health)
	}
	if !client.IsRunning(context.Background()) {
		t.Error("IsRunning = false for a healthy service")
	}
}

func TestSemanticClientIsRunning_Down(t *testing.T) {
	client := NewSemanticClient("http://127.0.0.1:1")
	if client.IsRunning(context.Background()) {
		t.Error("IsRunning = true for an unreachable service")
	}
}
