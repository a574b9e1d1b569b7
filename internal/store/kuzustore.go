//go:build cgo

// Package store persists a completed scan as an on-disk graph database,
// adapted from the teacher's internal/graph/kuzustore.go: the same KuzuDB
// connection/exec/query idiom, repointed from a symbol/cluster code graph
// to a file/verdict/import-edge graph so the `explain` command and the MCP
// server can answer "why is this file dead" with a traversal query instead
// of re-running the whole scan.
package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"

	"github.com/dusk-indust/deadcode/internal/classify"
)

// KuzuStore implements VerdictStore using KuzuDB as the graph backend.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

var _ VerdictStore = (*KuzuStore)(nil)

// NewFileStore opens (or creates) a file-based KuzuDB at dbPath, so the
// verdict graph survives across `scan` invocations for later `explain`
// queries.
func NewFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("store: create parent directory: %w", err)
	}
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(dbPath, cfg)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: open connection: %w", err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS File(
		path STRING,
		language STRING,
		verdict STRING,
		size_bytes INT64,
		PRIMARY KEY(path)
	)`,
	`CREATE REL TABLE IF NOT EXISTS IMPORTS(FROM File TO File)`,
}

// InitSchema creates the File node table and IMPORTS relationship table if
// they do not already exist.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("store: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// PersistResult wipes and rewrites the File/IMPORTS graph to reflect one
// completed scan: every candidate becomes a File node carrying its
// language and verdict ("reachable", or one of classify.Verdict's values
// for everything else); edges is the caller's best-effort import-edge map
// (path -> paths it imports), used only for the `explain` traversal, never
// by the classifier itself.
func (s *KuzuStore) PersistResult(ctx context.Context, candidates []string, languages map[string]string, reachable map[string]bool, findings []classify.Finding, edges map[string][]string) error {
	if err := s.exec("MATCH (f:File) DETACH DELETE f", map[string]any{}); err != nil {
		return err
	}

	verdictByPath := make(map[string]string, len(candidates))
	for _, f := range findings {
		verdictByPath[f.Path] = string(f.Verdict)
	}

	for _, path := range candidates {
		verdict := "reachable"
		if !reachable[path] {
			if v, ok := verdictByPath[path]; ok {
				verdict = v
			} else {
				verdict = "unreachable"
			}
		}
		if err := s.exec(
			"MERGE (f:File {path: $path}) SET f.language = $lang, f.verdict = $verdict, f.size_bytes = $size",
			map[string]any{
				"path":    path,
				"lang":    languages[path],
				"verdict": verdict,
				"size":    int64(0),
			},
		); err != nil {
			return err
		}
	}

	for src, targets := range edges {
		for _, dst := range targets {
			s.exec(
				`MATCH (a:File {path: $src}), (b:File {path: $dst})
				 CREATE (a)-[:IMPORTS]->(b)`,
				map[string]any{"src": src, "dst": dst},
			)
		}
	}
	return nil
}

// WhyDead returns the verdict recorded for path and every file that
// imports it (its potential entry points, had any of them been
// reachable), mirroring the BFS-evidence shape `explain` renders.
func (s *KuzuStore) WhyDead(_ context.Context, path string) (*Explanation, error) {
	rows, err := s.query(
		"MATCH (f:File {path: $path}) RETURN f.verdict, f.language",
		map[string]any{"path": path},
	)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	importers, err := s.query(
		`MATCH (a:File)-[:IMPORTS]->(b:File {path: $path}) RETURN a.path`,
		map[string]any{"path": path},
	)
	if err != nil {
		return nil, err
	}
	var importedBy []string
	for _, r := range importers {
		importedBy = append(importedBy, toString(r[0]))
	}

	return &Explanation{
		Path:       path,
		Verdict:    toString(rows[0][0]),
		Language:   toString(rows[0][1]),
		ImportedBy: importedBy,
	}, nil
}

func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("store: execute: %w", err)
	}
	res.Close()
	return nil
}

func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return nil, fmt.Errorf("store: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("store: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("store: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
