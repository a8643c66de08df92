package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/soundwolves/soundwolves-api/internal/core/domain"
)

func TestRoot(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/api/", "")
	if err := Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "SoundWolves API" || resp["status"] != "healthy" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, ok := resp["viewer_id"]; ok {
		t.Fatalf("anonymous request should not carry viewer_id")
	}
}

func TestRoot_WithViewer(t *testing.T) {
	c, rec := newJSONContext(http.MethodGet, "/api/", "")
	c.Set("user", &domain.User{ID: "user-1"})
	if err := Root(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["viewer_id"] != "user-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
