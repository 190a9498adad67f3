package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"rama_assistant/pkg/core/numbers"
)

// CalcRepo appends engine results to the calculation log and scenario
// store. The engine only produces these records; persistence is
// best-effort at the call site (a failed log write never blocks a reply).
type CalcRepo struct{}

func NewCalcRepo() *CalcRepo {
	return &CalcRepo{}
}

// SnapshotRecord is one persisted scenario (or sensitivity) snapshot.
type SnapshotRecord struct {
	Name      string          `json:"name"`
	Deltas    json.RawMessage `json:"deltas"`
	Outputs   json.RawMessage `json:"outputs"`
	CreatedAt time.Time       `json:"created_at"`
}

// SaveOutputs upserts the latest derived metrics for a property.
func (r *CalcRepo) SaveOutputs(ctx context.Context, propertyID string, result numbers.CalcResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	outputs, err := json.Marshal(result.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}
	anomalies, err := json.Marshal(result.Anomalies)
	if err != nil {
		return fmt.Errorf("failed to marshal anomalies: %w", err)
	}

	query := `
		INSERT INTO calc_outputs (property_id, outputs, anomalies, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id)
		DO UPDATE SET
			outputs = EXCLUDED.outputs,
			anomalies = EXCLUDED.anomalies,
			updated_at = EXCLUDED.updated_at;
	`
	if _, err := pool.Exec(ctx, query, propertyID, outputs, anomalies, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save calc outputs: %w", err)
	}
	return nil
}

// AppendLog inserts one calc_log entry with the full result record.
func (r *CalcRepo) AppendLog(ctx context.Context, propertyID string, result numbers.CalcResult) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	record, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal calc result: %w", err)
	}

	query := `
		INSERT INTO calc_log (id, property_id, record, triggered_by, trigger_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = pool.Exec(ctx, query, uuid.NewString(), propertyID, record,
		result.TriggerSource, result.TriggerType, result.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append calc log: %w", err)
	}
	return nil
}

// SaveSnapshot persists a named what-if or sensitivity snapshot.
func (r *CalcRepo) SaveSnapshot(ctx context.Context, propertyID, name string, deltas, outputs interface{}) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	deltasJSON, err := json.Marshal(deltas)
	if err != nil {
		return fmt.Errorf("failed to marshal deltas: %w", err)
	}
	outputsJSON, err := json.Marshal(outputs)
	if err != nil {
		return fmt.Errorf("failed to marshal outputs: %w", err)
	}

	query := `
		INSERT INTO scenario_snapshots (id, property_id, name, deltas, outputs, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := pool.Exec(ctx, query, uuid.NewString(), propertyID, name, deltasJSON, outputsJSON, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

// RecentSnapshots returns the latest snapshots for a property, newest
// first, for the export report.
func (r *CalcRepo) RecentSnapshots(ctx context.Context, propertyID string, limit int) ([]SnapshotRecord, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT name, deltas, outputs, created_at
		FROM scenario_snapshots
		WHERE property_id = $1
		ORDER BY created_at DESC
		LIMIT $2;
	`
	rows, err := pool.Query(ctx, query, propertyID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var s SnapshotRecord
		if err := rows.Scan(&s.Name, &s.Deltas, &s.Outputs, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
