package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type PriceRepository struct {
	db     *DB
	logger *logrus.Entry
}

func NewPriceRepository(db *DB, logger *logrus.Entry) *PriceRepository {
	return &PriceRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertLatest overwrites the price row for the asset, creating it on first
// write. Read-then-write on purpose: overlapping refreshes race and the last
// write wins, which is fine for an externally refreshed quotation.
func (r *PriceRepository) UpsertLatest(ctx context.Context, asset string, price float64) error {
	now := time.Now().UTC()

	var id int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id FROM prices WHERE asset = $1 ORDER BY updated_at DESC LIMIT 1`, asset).Scan(&id)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO prices (asset, price, updated_at) VALUES ($1, $2, $3)`,
			asset, price, now); err != nil {
			r.logger.WithError(err).Error("Failed to insert price record")
			return fmt.Errorf("failed to insert price record: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up price record: %w", err)
	default:
		if _, err := r.db.ExecContext(ctx,
			`UPDATE prices SET price = $1, updated_at = $2 WHERE id = $3`,
			price, now, id); err != nil {
			r.logger.WithError(err).Error("Failed to update price record")
			return fmt.Errorf("failed to update price record: %w", err)
		}
	}

	r.logger.WithFields(logrus.Fields{
		"asset": asset,
		"price": price,
	}).Info("Latest price stored")

	return nil
}

// GetLatest returns the newest price record for the asset, or nil when no
// refresh has succeeded yet.
func (r *PriceRepository) GetLatest(ctx context.Context, asset string) (*models.PriceRecord, error) {
	query := `
        SELECT id, asset, price, updated_at
        FROM prices
        WHERE asset = $1
        ORDER BY updated_at DESC
        LIMIT 1
    `

	var record models.PriceRecord
	err := r.db.QueryRowContext(ctx, query, asset).Scan(
		&record.ID, &record.Asset, &record.Price, &record.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest price: %w", err)
	}

	return &record, nil
}
