package api

import (
	"math"
	"strings"

	"github.com/BalesJ1029/hodlalpha/internal/view"
	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type createAlertRequest struct {
	Asset        *string  `json:"asset"`
	EntryDate    *string  `json:"entryDate"`
	EntryPrice   *float64 `json:"entryPrice"`
	CurrentPrice *float64 `json:"currentPrice"`
	AlertType    *string  `json:"alertType"`
}

// validateAlert checks every field independently and collects all failures
// instead of stopping at the first one.
func validateAlert(req createAlertRequest) (models.Alert, []string) {
	var errors []string
	alert := models.Alert{AlertType: models.AlertTypeClassic}

	if req.Asset == nil || strings.TrimSpace(*req.Asset) == "" {
		errors = append(errors, "asset is required and must be a non-empty string")
	} else {
		alert.Asset = strings.TrimSpace(*req.Asset)
	}

	if req.EntryDate == nil || strings.TrimSpace(*req.EntryDate) == "" {
		errors = append(errors, "entryDate is required and must be a non-empty string")
	} else if _, err := view.ParseEntryDate(*req.EntryDate); err != nil {
		errors = append(errors, "entryDate must be a valid date string")
	} else {
		alert.EntryDate = strings.TrimSpace(*req.EntryDate)
	}

	if req.EntryPrice == nil || math.IsNaN(*req.EntryPrice) || math.IsInf(*req.EntryPrice, 0) {
		errors = append(errors, "entryPrice is required and must be a finite number")
	} else {
		alert.EntryPrice = *req.EntryPrice
	}

	if req.CurrentPrice != nil {
		if math.IsNaN(*req.CurrentPrice) || math.IsInf(*req.CurrentPrice, 0) {
			errors = append(errors, "currentPrice must be a finite number")
		} else {
			alert.CurrentPrice = req.CurrentPrice
		}
	}

	if req.AlertType != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.AlertType))
		if !models.IsValidAlertType(normalized) {
			errors = append(errors, "alertType must be one of: classic, vision")
		} else {
			alert.AlertType = normalized
		}
	}

	return alert, errors
}
