package store

import (
	"context"
	"fmt"
	"time"

	"rama_assistant/pkg/core/property"
)

// NumbersRepo reads and writes a property's numbers-framework rows. Rows
// live in the per-property schema prop_<shortid>__numbers_framework.
type NumbersRepo struct{}

func NewNumbersRepo() *NumbersRepo {
	return &NumbersRepo{}
}

// GetLineItems loads every row of the property's numbers framework.
func (r *NumbersRepo) GetLineItems(ctx context.Context, propertyID string) ([]property.LineItem, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	schema := property.NumbersSchema(propertyID)
	query := fmt.Sprintf(`
		SELECT group_name, item_key, item_label, is_percent, amount, updated_at
		FROM %s.line_items
		WHERE property_id = $1
		ORDER BY group_name, item_key;
	`, schema)

	rows, err := pool.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items: %w", err)
	}
	defer rows.Close()

	var items []property.LineItem
	for rows.Next() {
		var item property.LineItem
		if err := rows.Scan(&item.GroupName, &item.ItemKey, &item.ItemLabel, &item.IsPercent, &item.Amount, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetAmount writes one cell of the framework ("pon <item> a <valor>").
func (r *NumbersRepo) SetAmount(ctx context.Context, propertyID, itemKey string, amount float64) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	schema := property.NumbersSchema(propertyID)
	query := fmt.Sprintf(`
		UPDATE %s.line_items
		SET amount = $1, updated_at = $2
		WHERE property_id = $3 AND item_key = $4;
	`, schema)

	tag, err := pool.Exec(ctx, query, amount, time.Now().UTC(), propertyID, itemKey)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", itemKey, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no line item %s for property %s", itemKey, propertyID)
	}
	return nil
}
