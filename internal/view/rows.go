package view

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

const placeholder = "—"

// Row is one rendered line of a recommendations table.
type Row struct {
	ID                string
	Asset             string
	EntryDateLabel    string
	EntryPriceLabel   string
	CurrentPriceLabel string
	PercentLabel      string
	PercentClass      string
}

var entryDateLayouts = []string{time.RFC3339, "2006-01-02"}

func ParseEntryDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	for _, layout := range entryDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ComputeRows turns alerts into display rows, newest entry date first. A nil
// slice means the alerts have not loaded and yields nil, distinct from a
// loaded-but-empty slice which yields an empty row list. Alerts without a
// curated current price fall back to fallbackPrice, the reference asset's
// latest quotation, whatever the alert's own asset is.
func ComputeRows(alerts []models.Alert, fallbackPrice *float64) []Row {
	if alerts == nil {
		return nil
	}

	sorted := make([]models.Alert, len(alerts))
	copy(sorted, alerts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sortKey(sorted[i]).After(sortKey(sorted[j]))
	})

	rows := make([]Row, 0, len(sorted))
	for _, alert := range sorted {
		current := alert.CurrentPrice
		if current == nil {
			current = fallbackPrice
		}

		percentLabel, percentClass := formatPercent(alert.EntryPrice, current)

		currentLabel := placeholder
		if current != nil {
			currentLabel = formatPrice(*current)
		}

		rows = append(rows, Row{
			ID:                alert.ID,
			Asset:             alert.Asset,
			EntryDateLabel:    formatDate(alert.EntryDate),
			EntryPriceLabel:   formatPrice(alert.EntryPrice),
			CurrentPriceLabel: currentLabel,
			PercentLabel:      percentLabel,
			PercentClass:      percentClass,
		})
	}

	return rows
}

// Unparseable entry dates sort by creation time instead.
func sortKey(alert models.Alert) time.Time {
	if t, err := ParseEntryDate(alert.EntryDate); err == nil {
		return t
	}
	return alert.CreatedAt
}

func formatDate(value string) string {
	t, err := ParseEntryDate(value)
	if err != nil {
		return value
	}
	return t.Format("02 Jan 06")
}

func formatPrice(value float64) string {
	return humanize.FormatFloat("#,###.##", value)
}

func formatPercent(entryPrice float64, currentPrice *float64) (string, string) {
	if currentPrice == nil || *currentPrice == 0 || entryPrice == 0 {
		return placeholder, ""
	}

	pct := (*currentPrice/entryPrice - 1) * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return placeholder, ""
	}

	sign := ""
	if pct > 0 {
		sign = "+"
	}

	class := "pos"
	if pct < 0 {
		class = "neg"
	}

	return fmt.Sprintf("%s%.1f%%", sign, pct), class
}
