// Package schema describes the tables the service reads. The store is
// created and loaded elsewhere; Verify only checks that what the queries
// need is present. The embedded DDL files, named 0001_name.sql and so on,
// document that layout and are used to build fixture databases.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var sqlFS embed.FS

const ddlDir = "sql"

var ddlFileRe = regexp.MustCompile(`^(\d{4})_(.+)\.sql$`)

// requiredColumns lists, per table, the columns read by the repository.
var requiredColumns = map[string][]string{
	"measurement": {"id", "station", "date", "prcp", "tobs"},
	"station":     {"id", "station", "name", "latitude", "longitude", "elevation"},
}

// Statement is one embedded DDL file.
type Statement struct {
	Version string
	Name    string
	Body    string
}

// Statements returns the embedded DDL in version order.
func Statements() ([]Statement, error) {
	entries, err := fs.ReadDir(sqlFS, ddlDir)
	if err != nil {
		return nil, fmt.Errorf("read ddl dir: %w", err)
	}
	var out []Statement
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := ddlFileRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		body, err := fs.ReadFile(sqlFS, ddlDir+"/"+e.Name())
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		out = append(out, Statement{Version: m[1], Name: m[2], Body: string(body)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// MissingError lists what Verify could not find.
type MissingError struct {
	Tables  []string
	Columns map[string][]string
}

func (e *MissingError) Error() string {
	var parts []string
	for _, t := range e.Tables {
		parts = append(parts, "table "+t)
	}
	tables := make([]string, 0, len(e.Columns))
	for t := range e.Columns {
		tables = append(tables, t)
	}
	sort.Strings(tables)
	for _, t := range tables {
		parts = append(parts, fmt.Sprintf("%s(%s)", t, strings.Join(e.Columns[t], ", ")))
	}
	return "schema: missing " + strings.Join(parts, "; ")
}

// Verify checks that every required table and column exists. It returns a
// *MissingError when something is absent.
func Verify(ctx context.Context, db *sql.DB) error {
	missing := &MissingError{Columns: map[string][]string{}}

	tables := make([]string, 0, len(requiredColumns))
	for t := range requiredColumns {
		tables = append(tables, t)
	}
	sort.Strings(tables)

	for _, table := range tables {
		have, err := tableColumns(ctx, db, table)
		if err != nil {
			return fmt.Errorf("inspect %s: %w", table, err)
		}
		if len(have) == 0 {
			missing.Tables = append(missing.Tables, table)
			continue
		}
		for _, col := range requiredColumns[table] {
			if !have[col] {
				missing.Columns[table] = append(missing.Columns[table], col)
			}
		}
	}

	if len(missing.Tables) > 0 || len(missing.Columns) > 0 {
		return missing
	}
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	// table names come from requiredColumns, never from input
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var (
			cid      int
			name     string
			colType  string
			notNull  int
			dfltVal  sql.NullString
			pkMember int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &pkMember); err != nil {
			return nil, err
		}
		out[strings.ToLower(name)] = true
	}
	return out, rows.Err()
}
