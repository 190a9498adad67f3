package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"rama_assistant/pkg/core/property"
)

// SummaryRepo reads and writes the property's summary framework: one
// narrative summary per property, kept in the per-property summary schema
// alongside the numbers and documents frameworks.
type SummaryRepo struct{}

func NewSummaryRepo() *SummaryRepo {
	return &SummaryRepo{}
}

// GetSummary loads the current summary text. A property without one yet
// returns empty, not an error.
func (r *SummaryRepo) GetSummary(ctx context.Context, propertyID string) (string, time.Time, error) {
	pool := GetPool()
	if pool == nil {
		return "", time.Time{}, fmt.Errorf("database pool not initialized")
	}

	schema := property.SummarySchema(propertyID)
	query := fmt.Sprintf(`SELECT content, updated_at FROM %s.summary WHERE property_id = $1`, schema)

	var content string
	var updatedAt time.Time
	err := pool.QueryRow(ctx, query, propertyID).Scan(&content, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", time.Time{}, nil
		}
		return "", time.Time{}, fmt.Errorf("failed to load summary: %w", err)
	}
	return content, updatedAt, nil
}

// SaveSummary upserts the summary text for a property.
func (r *SummaryRepo) SaveSummary(ctx context.Context, propertyID, content string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	schema := property.SummarySchema(propertyID)
	query := fmt.Sprintf(`
		INSERT INTO %s.summary (property_id, content, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (property_id)
		DO UPDATE SET
			content = EXCLUDED.content,
			updated_at = EXCLUDED.updated_at;
	`, schema)
	if _, err := pool.Exec(ctx, query, propertyID, content, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	return nil
}
