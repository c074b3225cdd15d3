package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mycloudcondo/kuyan/internal/database"
)

type Store struct {
	db *database.DB
}

func New(db *database.DB) *Store {
	return &Store{db: db}
}

// FindMatch returns the preferred label whose pattern is a substring of the
// raw label, case-insensitively. The longest pattern wins so that more
// specific mappings beat generic ones; empty string means no match.
// Matching happens in Go: patterns are literal text, never LIKE wildcards.
func (s *Store) FindMatch(ctx context.Context, rawLabel string) (string, error) {
	query := `
		SELECT raw_pattern, preferred_label
		FROM label_mappings
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return "", fmt.Errorf("finding label match: %w", err)
	}
	defer rows.Close()

	haystack := strings.ToLower(rawLabel)

	for rows.Next() {
		var pattern, preferred string
		if err := rows.Scan(&pattern, &preferred); err != nil {
			return "", fmt.Errorf("scanning label mapping: %w", err)
		}

		if strings.Contains(haystack, strings.ToLower(pattern)) {
			return preferred, nil
		}
	}

	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("finding label match: %w", err)
	}

	return "", nil
}

func (s *Store) CreateMapping(ctx context.Context, rawPattern, preferredLabel string) error {
	query := s.db.Rebind(`
		INSERT INTO label_mappings (raw_pattern, preferred_label, created_at)
		VALUES (?, ?, ?)
	`)

	_, err := s.db.ExecContext(ctx, query,
		rawPattern, preferredLabel, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("creating label mapping: %w", err)
	}

	return nil
}
