package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"

	"github.com/heartmarshall/myenglish-flashcards/internal/transport/terminal"
)

func mintToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}).SignedString([]byte("test-secret-at-least-32-chars-long"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

// newBackend serves one module with three cards and records learned updates.
func newBackend(t *testing.T, learned chan<- string) *httptest.Server {
	t.Helper()

	r := mux.NewRouter()
	r.HandleFunc("/modules/{id}", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 17, "name": "Animals", "description": "Basic animals", "cards_count": 3,
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/modules/{id}/cards", func(w http.ResponseWriter, req *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]any{
			{"id": 1, "term": "cat", "definition": "кот"},
			{"id": 2, "original": "dog", "translation": "собака"},
			{"id": 3, "term": "bird", "definition": "птица", "learned_status": "learned"},
		})
	}).Methods(http.MethodGet)
	r.HandleFunc("/cards/{id}/learned", func(w http.ResponseWriter, req *http.Request) {
		if !strings.HasPrefix(req.Header.Get("Authorization"), "Bearer ") {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		learned <- mux.Vars(req)["id"]
		w.WriteHeader(http.StatusNoContent)
	}).Methods(http.MethodPatch)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, baseURL, token string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := fmt.Sprintf("api:\n  base_url: %q\n  token: %q\n  retry_delay: \"1ms\"\nlog:\n  level: \"debug\"\n", baseURL, token)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestRun_ReviewAgainstBackend(t *testing.T) {
	learned := make(chan string, 1)
	srv := newBackend(t, learned)

	var out, logs bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, mintToken(t, time.Hour)),
		ModuleID:   "17",
		Mode:       terminal.ModeReview,
		In:         strings.NewReader("l\nq\n"),
		Out:        &out,
		LogOut:     &logs,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v\nlogs:\n%s", err, logs.String())
	}

	if got := <-learned; got != "1" {
		t.Errorf("learned card = %q, want 1", got)
	}
	if !strings.Contains(out.String(), "Animals (3 cards)") {
		t.Errorf("missing module header in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Learned 2 of 3 (67%)") {
		t.Errorf("missing stats in output:\n%s", out.String())
	}
	if !strings.Contains(logs.String(), "api.request") {
		t.Error("requests should be logged")
	}
}

func TestRun_TokenFlagOverridesConfig(t *testing.T) {
	srv := newBackend(t, make(chan string, 1))

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, mintToken(t, -time.Minute)),
		ModuleID:   "17",
		Token:      mintToken(t, time.Hour),
		In:         strings.NewReader("q\n"),
		Out:        &out,
		LogOut:     &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_ExpiredToken(t *testing.T) {
	srv := newBackend(t, make(chan string, 1))

	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, mintToken(t, -time.Minute)),
		ModuleID:   "17",
		In:         strings.NewReader(""),
		Out:        &bytes.Buffer{},
		LogOut:     &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestRun_MissingInputs(t *testing.T) {
	srv := newBackend(t, make(chan string, 1))

	tests := []struct {
		name  string
		opts  Options
		token string
	}{
		{"no module", Options{}, mintToken(t, time.Hour)},
		{"no token", Options{ModuleID: "17"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.opts.ConfigPath = writeConfig(t, srv.URL, tt.token)
			tt.opts.LogOut = &bytes.Buffer{}
			tt.opts.Out = &bytes.Buffer{}
			tt.opts.In = strings.NewReader("")
			if err := Run(context.Background(), tt.opts); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRun_ModuleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)

	var out bytes.Buffer
	err := Run(context.Background(), Options{
		ConfigPath: writeConfig(t, srv.URL, mintToken(t, time.Hour)),
		ModuleID:   "404",
		In:         strings.NewReader(""),
		Out:        &out,
		LogOut:     &bytes.Buffer{},
	})
	if err == nil {
		t.Fatal("expected error for unknown module")
	}
	if !strings.Contains(out.String(), "Not found.") {
		t.Errorf("user should see a not-found message, got:\n%s", out.String())
	}
}
