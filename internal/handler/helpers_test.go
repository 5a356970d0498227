package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/dysobo/niuzi-assistant/internal/handler"
	"github.com/dysobo/niuzi-assistant/internal/repository/sqlite"
	"github.com/dysobo/niuzi-assistant/internal/service"
	"github.com/dysobo/niuzi-assistant/internal/stats"
)

const testJWTSecret = "test-secret-for-handler-tests-0123456789"

func newTestServices(t *testing.T) (handler.Services, *sqlite.DB) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New DB: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return handler.Services{
		Auth:         service.NewAuthService(db.Users(), testJWTSecret, time.Hour, 4),
		Records:      service.NewRecordService(db.Records()),
		Stats:        service.NewStatsService(db.Records(), stats.NewEngine(time.UTC)),
		DB:           db,
		LiveInterval: 50 * time.Millisecond,
	}, db
}

func newTestServer(t *testing.T, s handler.Services) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, s)
	srv := httptest.NewServer(handler.SecurityHeaders(mux))
	t.Cleanup(srv.Close)
	return srv
}

// registerUser registers through the service and returns a bearer token.
func registerUser(t *testing.T, auth *service.AuthService, username string) string {
	t.Helper()
	_, token, err := auth.Register(context.Background(), username, "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return token
}

// do sends a request with an optional bearer token and JSON body and returns
// the status code and raw body.
func do(t *testing.T, method, url, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return v
}
