package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"climate-server/internal/config"
	"climate-server/internal/schema"

	_ "github.com/mattn/go-sqlite3"
)

// seedStore writes a store with the full schema and a few measurements.
func seedStore(t *testing.T, withSchema bool) config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	w, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	defer func() { _ = w.Close() }()

	if withSchema {
		stmts, err := schema.Statements()
		if err != nil {
			t.Fatalf("Statements() err = %v", err)
		}
		for _, s := range stmts {
			if _, err := w.Exec(s.Body); err != nil {
				t.Fatalf("apply %s: %v", s.Name, err)
			}
		}
		if _, err := w.Exec(`INSERT INTO measurement (station, date, prcp, tobs) VALUES
			('USC00519397', '2017-08-21', 0.0, 64),
			('USC00519397', '2017-08-22', 0.5, 70),
			('USC00519397', '2017-08-23', NULL, 76)`); err != nil {
			t.Fatalf("seed: %v", err)
		}
	} else if _, err := w.Exec(`CREATE TABLE measurement (id INTEGER PRIMARY KEY, date TEXT)`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	return config.Config{
		Driver:       "sqlite3",
		Path:         path,
		LogLevel:     slog.LevelInfo,
		MaxOpenConns: 1,
		QueryTimeout: 5 * time.Second,
	}
}

func TestCheckSchema(t *testing.T) {
	t.Run("complete store", func(t *testing.T) {
		cfg := seedStore(t, true)
		if err := CheckSchema(context.Background(), cfg); err != nil {
			t.Fatalf("CheckSchema() err = %v; want nil", err)
		}
	})

	t.Run("incomplete store", func(t *testing.T) {
		cfg := seedStore(t, false)
		err := CheckSchema(context.Background(), cfg)
		var missing *schema.MissingError
		if !errors.As(err, &missing) {
			t.Fatalf("CheckSchema() err = %v; want *schema.MissingError", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := config.Config{Driver: "sqlite3", Path: filepath.Join(t.TempDir(), "absent.sqlite")}
		if err := CheckSchema(context.Background(), cfg); err == nil {
			t.Fatal("CheckSchema() err = nil; want error for a missing store")
		}
	})
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name      string
		start     string
		end       string
		wantEnd   string
		wantTemps []any
	}{
		{name: "start only", start: "2017-08-22", wantEnd: "2017-08-23", wantTemps: []any{70.0, 73.0, 76.0}},
		{name: "start and end", start: "2017-08-21", end: "2017-08-22", wantEnd: "2017-08-22", wantTemps: []any{64.0, 67.0, 70.0}},
		{name: "no data", start: "2018-01-01", end: "2018-12-31", wantEnd: "2018-12-31", wantTemps: []any{nil, nil, nil}},
	}

	cfg := seedStore(t, true)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Summary(context.Background(), cfg, &buf, tt.start, tt.end); err != nil {
				t.Fatalf("Summary() err = %v", err)
			}

			var got []map[string]any
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode %q: %v", buf.String(), err)
			}
			if len(got) != 4 {
				t.Fatalf("len = %d; want 4", len(got))
			}
			if got[0]["start_date"] != tt.start || got[0]["end_date"] != tt.wantEnd {
				t.Errorf("bounds = %v; want %s..%s", got[0], tt.start, tt.wantEnd)
			}
			for i, want := range tt.wantTemps {
				if got[i+1]["Temperature"] != want {
					t.Errorf("%v = %v; want %v", got[i+1]["Observation"], got[i+1]["Temperature"], want)
				}
			}
		})
	}
}
