package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"rama_assistant/pkg/core/property"
)

// PropertyRepo handles property record CRUD. Inserting a property fires
// the DB trigger that provisions its three framework schemas.
type PropertyRepo struct{}

func NewPropertyRepo() *PropertyRepo {
	return &PropertyRepo{}
}

// Add creates a property record and returns it with its generated ID.
func (r *PropertyRepo) Add(ctx context.Context, name, address string) (*property.Property, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	p := &property.Property{
		ID:        uuid.NewString(),
		Name:      name,
		Address:   address,
		CreatedAt: time.Now().UTC(),
	}
	query := `
		INSERT INTO properties (id, name, address, created_at)
		VALUES ($1, $2, $3, $4);
	`
	if _, err := pool.Exec(ctx, query, p.ID, p.Name, p.Address, p.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to insert property: %w", err)
	}
	return p, nil
}

// Get loads one property by ID.
func (r *PropertyRepo) Get(ctx context.Context, id string) (*property.Property, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var p property.Property
	query := `SELECT id, name, address, created_at FROM properties WHERE id = $1`
	err := pool.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("property not found: %s", id)
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &p, nil
}

// Find looks a property up by exact name and address.
func (r *PropertyRepo) Find(ctx context.Context, name, address string) (*property.Property, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	var p property.Property
	query := `SELECT id, name, address, created_at FROM properties WHERE name = $1 AND address = $2 LIMIT 1`
	err := pool.QueryRow(ctx, query, name, address).Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find property: %w", err)
	}
	return &p, nil
}

// List returns the most recent properties, newest first.
func (r *PropertyRepo) List(ctx context.Context, limit int) ([]property.Property, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, name, address, created_at FROM properties ORDER BY created_at DESC LIMIT $1`
	rows, err := pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var out []property.Property
	for rows.Next() {
		var p property.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Address, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Search ranks recent properties against a free-text query.
func (r *PropertyRepo) Search(ctx context.Context, query string, limit int) ([]property.Property, error) {
	// Token matching happens in Go over the recent set; the properties
	// table is small (tens of records per account).
	all, err := r.List(ctx, 200)
	if err != nil {
		return nil, err
	}
	return property.RankMatches(query, all, limit), nil
}
