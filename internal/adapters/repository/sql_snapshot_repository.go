package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.SnapshotRepository = (*SQLSnapshotRepository)(nil)

// SQLSnapshotRepository stores each user's app state as one JSON document.
type SQLSnapshotRepository struct {
	db *sqlx.DB
}

func NewSQLSnapshotRepository(db *sqlx.DB) *SQLSnapshotRepository {
	return &SQLSnapshotRepository{
		db: db,
	}
}

func (r *SQLSnapshotRepository) Load(ctx context.Context, userID string) (*domain.AppData, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var raw string
	query := r.db.Rebind(`SELECT data FROM app_snapshots WHERE user_id = ?`)
	if err := r.db.GetContext(ctx, &raw, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("repository: load snapshot failed: %w", err)
	}

	data, err := domain.DecodeAppData([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("repository: decode snapshot failed: %w", err)
	}
	return data, nil
}

// Save upserts the snapshot. The syntax is shared by PostgreSQL and SQLite.
func (r *SQLSnapshotRepository) Save(ctx context.Context, userID string, data *domain.AppData) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	encoded, err := data.Encode()
	if err != nil {
		return fmt.Errorf("repository: encode snapshot failed: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO app_snapshots (user_id, data, version, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET data = excluded.data, version = excluded.version, updated_at = excluded.updated_at
	`)

	if _, err := r.db.ExecContext(ctx, query, userID, string(encoded), data.Version, time.Now().UTC()); err != nil {
		return fmt.Errorf("repository: save snapshot failed: %w", err)
	}
	return nil
}

func (r *SQLSnapshotRepository) Delete(ctx context.Context, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM app_snapshots WHERE user_id = ?`), userID)
	if err != nil {
		return fmt.Errorf("repository: delete snapshot failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("repository: failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrSnapshotNotFound
	}
	return nil
}
