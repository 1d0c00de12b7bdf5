package database

import (
	"context"
	"fmt"

	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

func floatPtr(v float64) *float64 { return &v }

// demoAlerts is the hand-curated recommendation list used to bootstrap
// fresh environments.
var demoAlerts = []models.Alert{
	{Asset: "Ethereum*", EntryDate: "2022-06-21", EntryPrice: 1278.41, CurrentPrice: floatPtr(4397.37), AlertType: models.AlertTypeClassic},
	{Asset: "Solana*", EntryDate: "2022-06-21", EntryPrice: 26.15, CurrentPrice: floatPtr(204.08), AlertType: models.AlertTypeClassic},
	{Asset: "EU Carbon Allowance Futures", EntryDate: "2023-01-23", EntryPrice: 85.19, CurrentPrice: floatPtr(74.27), AlertType: models.AlertTypeClassic},
	{Asset: "NDX", EntryDate: "2023-02-02", EntryPrice: 12655.18, CurrentPrice: floatPtr(23415.42), AlertType: models.AlertTypeClassic},
	{Asset: "AAPL", EntryDate: "2023-06-02", EntryPrice: 180.95, CurrentPrice: floatPtr(232.14), AlertType: models.AlertTypeClassic},
	{Asset: "TSLA", EntryDate: "2023-06-02", EntryPrice: 213.97, CurrentPrice: floatPtr(333.87), AlertType: models.AlertTypeClassic},
	{Asset: "COIN", EntryDate: "2023-11-27", EntryPrice: 112.58, CurrentPrice: floatPtr(304.54), AlertType: models.AlertTypeClassic},
}

// SeedDemoData inserts the demo recommendations when the alerts table is
// empty. A no-op once any alert exists.
func (r *AlertRepository) SeedDemoData(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM alerts`).Scan(&count); err != nil {
		return fmt.Errorf("failed to count alerts: %w", err)
	}

	if count > 0 {
		r.logger.WithField("existing_alerts", count).Debug("Skipping demo data seed")
		return nil
	}

	for _, alert := range demoAlerts {
		if _, err := r.Insert(ctx, alert); err != nil {
			return fmt.Errorf("failed to seed demo alert %q: %w", alert.Asset, err)
		}
	}

	r.logger.WithField("seeded_alerts", len(demoAlerts)).Info("Seeded demo recommendations")
	return nil
}
