package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fruit.jpg")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xD9}, 0o644); err != nil {
		t.Fatalf("write test image: %v", err)
	}
	return path
}

func TestHTTPClassifier_Classify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req classifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Image == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(classifyResponse{
			Ripeness: "Overripe", Confidence: 88, Explanation: "dark spots on the peel",
		})
	}))
	defer srv.Close()

	c := NewHTTP(Config{URL: srv.URL, APIKey: "test-key"})
	res, err := c.Classify(context.Background(), writeTestImage(t))
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.Label != "Overripe" {
		t.Errorf("Label = %q, want Overripe", res.Label)
	}
	if res.Explanation != "dark spots on the peel" {
		t.Errorf("Explanation = %q", res.Explanation)
	}
}

func TestHTTPClassifier_UnusableVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(classifyResponse{Ripeness: "Unknown"})
	}))
	defer srv.Close()

	c := NewHTTP(Config{URL: srv.URL})
	if _, err := c.Classify(context.Background(), writeTestImage(t)); err == nil {
		t.Fatalf("expected error on Unknown verdict")
	}
}

func TestHTTPClassifier_NoEndpoint(t *testing.T) {
	c := NewHTTP(Config{})
	if _, err := c.Classify(context.Background(), writeTestImage(t)); err == nil {
		t.Fatalf("expected error without an endpoint")
	}
}

func TestServiceFallback(t *testing.T) {
	known := map[string]bool{}
	for _, l := range Labels {
		known[l] = true
	}

	// nil inner classifier always falls back
	s := NewService(nil)
	for i := 0; i < 20; i++ {
		res := s.ClassifyOrFallback(context.Background(), "/does/not/matter.jpg")
		if !known[res.Label] {
			t.Fatalf("fallback produced unknown label %q", res.Label)
		}
	}

	// failing endpoint degrades, never errors out
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()
	s = NewService(NewHTTP(Config{URL: srv.URL}))
	res := s.ClassifyOrFallback(context.Background(), writeTestImage(t))
	if !known[res.Label] {
		t.Fatalf("fallback produced unknown label %q", res.Label)
	}
}

func TestServicePassesThroughVerdict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// arbitrary label strings are stored as-is
		_ = json.NewEncoder(w).Encode(classifyResponse{Ripeness: "Nearly ripe"})
	}))
	defer srv.Close()

	s := NewService(NewHTTP(Config{URL: srv.URL}))
	res := s.ClassifyOrFallback(context.Background(), writeTestImage(t))
	if res.Label != "Nearly ripe" {
		t.Fatalf("Label = %q, want pass-through verdict", res.Label)
	}
}
