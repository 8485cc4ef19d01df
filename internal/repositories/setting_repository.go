package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

type settingRepository struct {
	db *sql.DB
}

// NewSettingRepository creates a new setting repository
func NewSettingRepository(db *sql.DB) *settingRepository {
	return &settingRepository{
		db: db,
	}
}

// GetAll retrieves all stored settings as a key-value map
func (r *settingRepository) GetAll(ctx context.Context) (map[string]string, error) {
	query := "SELECT `key`, `value` FROM settings"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings[key] = value
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return settings, nil
}

// UpsertBatch writes all given key-value pairs in one transaction so a partial
// update never becomes visible.
func (r *settingRepository) UpsertBatch(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := "INSERT INTO settings (`key`, `value`) VALUES (?, ?) ON DUPLICATE KEY UPDATE `value` = VALUES(`value`)"
	for key, value := range values {
		if _, err := tx.ExecContext(ctx, query, key, value); err != nil {
			return fmt.Errorf("failed to upsert setting: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit settings update: %w", err)
	}

	return nil
}
