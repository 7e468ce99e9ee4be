package database

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
)

//go:embed schema.sql
var schemaSQL string

// Statements splits a SQL script on semicolons. Full-line "--" comments are
// removed first, so a chunk left empty is dropped.
func Statements(script string) []string {
	var stmts []string
	for _, chunk := range strings.Split(script, ";") {
		if stmt := stripComments(chunk); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}
	return stmts
}

func stripComments(chunk string) string {
	lines := strings.Split(chunk, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// Migrate applies the embedded schema. Every statement is idempotent.
func Migrate(ctx context.Context, db Querier) error {
	for _, stmt := range Statements(schemaSQL) {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
