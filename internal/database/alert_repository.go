package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type AlertRepository struct {
	db     *DB
	logger *logrus.Entry
}

func NewAlertRepository(db *DB, logger *logrus.Entry) *AlertRepository {
	return &AlertRepository{
		db:     db,
		logger: logger,
	}
}

// Insert stores a new alert and returns its store-assigned id.
func (r *AlertRepository) Insert(ctx context.Context, alert models.Alert) (string, error) {
	id := uuid.New().String()

	query := `
        INSERT INTO alerts (id, asset, entry_date, entry_price, current_price, alert_type)
        VALUES ($1, $2, $3, $4, $5, $6)
    `

	_, err := r.db.ExecContext(ctx, query,
		id, alert.Asset, alert.EntryDate, alert.EntryPrice, alert.CurrentPrice, alert.AlertType)
	if err != nil {
		r.logger.WithError(err).Error("Failed to insert alert")
		return "", fmt.Errorf("failed to insert alert: %w", err)
	}

	r.logger.WithFields(logrus.Fields{
		"alert_id":   id,
		"asset":      alert.Asset,
		"alert_type": alert.AlertType,
	}).Info("Alert inserted")

	return id, nil
}

// ListByType returns all alerts of the given type, newest insertion first.
func (r *AlertRepository) ListByType(ctx context.Context, alertType string) ([]models.Alert, error) {
	query := `
        SELECT id, asset, entry_date, entry_price, current_price, alert_type, created_at
        FROM alerts
        WHERE alert_type = $1
        ORDER BY created_at DESC
    `

	rows, err := r.db.QueryContext(ctx, query, alertType)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query alerts")
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.Alert
	for rows.Next() {
		var alert models.Alert
		var currentPrice sql.NullFloat64

		if err := rows.Scan(&alert.ID, &alert.Asset, &alert.EntryDate, &alert.EntryPrice,
			&currentPrice, &alert.AlertType, &alert.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert row: %w", err)
		}

		if currentPrice.Valid {
			value := currentPrice.Float64
			alert.CurrentPrice = &value
		}

		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alert rows: %w", err)
	}

	return alerts, nil
}
