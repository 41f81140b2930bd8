package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warriorstats/configs"
	"warriorstats/internal/api"
	"warriorstats/internal/service"
	"warriorstats/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"go.uber.org/zap/zaptest"
)

type fakeStore struct{}

func (fakeStore) WarriorStats(context.Context) (*storage.StatsResult, error) {
	return &storage.StatsResult{ByStatus: map[string]int{}}, nil
}

// smoke test: server starts and stops on context cancel
func TestRunStartsAndStops(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	srv := api.NewServer(service.New(fakeStore{}), logger).Routes()

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	if err := run(ctx, srv, logger, ":0"); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

// ensure server handles shutdown without panic when ListenAndServe returns ErrServerClosed
func TestRunShutdownGraceful(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	srv := http.NewServeMux() // empty handler is fine

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := run(ctx, srv, logger, ":0"); err != nil {
		t.Fatalf("run returned error: %v", err)
	}
}

func TestRunListenError(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	srv := http.NewServeMux()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := run(ctx, srv, logger, "://bad"); err == nil {
		t.Fatal("expected listen error")
	}
}

func TestBootstrapSuccess(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectClose()

	origMigrate := migrateFunc
	defer func() { migrateFunc = origMigrate }()
	migrateFunc = func(context.Context, *sql.DB) error { return nil }

	open := func(driver, dsn string) (*sql.DB, error) { return db, nil }
	cfg := &configs.Config{DatabaseURL: "custom", HTTPAddr: ":0"}
	handler, cleanup, err := bootstrap(cfg, open, logger)
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	if handler == nil {
		t.Fatal("handler nil")
	}
	cleanup()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

// no DATABASE_URL: bootstrap succeeds and the handler reports the missing
// configuration instead of the process dying
func TestBootstrapUnconfigured(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	open := func(driver, dsn string) (*sql.DB, error) {
		t.Fatal("openDB must not be called without DATABASE_URL")
		return nil, nil
	}
	cfg := &configs.Config{HTTPAddr: ":0"}
	handler, cleanup, err := bootstrap(cfg, open, logger)
	if err != nil {
		t.Fatalf("bootstrap error: %v", err)
	}
	defer cleanup()

	req := httptest.NewRequest(http.MethodGet, "/api/warriors/stats", http.NoBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var out struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Success || out.Error != "Database not configured" {
		t.Fatalf("body = %+v", out)
	}
}

func TestBootstrapMigrateError(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	origMigrate := migrateFunc
	defer func() { migrateFunc = origMigrate }()
	migrateFunc = func(context.Context, *sql.DB) error { return errors.New("migrate") }

	open := func(driver, dsn string) (*sql.DB, error) { return db, nil }
	cfg := &configs.Config{DatabaseURL: "custom", HTTPAddr: ":0"}
	if _, _, err := bootstrap(cfg, open, logger); err == nil {
		t.Fatal("expected migrate error")
	}
}

func TestBootstrapOpenError(t *testing.T) {
	logger := zaptest.NewLogger(t).Sugar()
	open := func(driver, dsn string) (*sql.DB, error) { return nil, errors.New("open") }
	cfg := &configs.Config{DatabaseURL: "bad", HTTPAddr: ":0"}
	if _, _, err := bootstrap(cfg, open, logger); err == nil {
		t.Fatal("expected open error")
	}
}
