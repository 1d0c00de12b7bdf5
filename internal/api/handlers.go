package api

import (
	"encoding/json"
	"net/http"

	"github.com/BalesJ1029/hodlalpha/internal/metrics"
	"github.com/BalesJ1029/hodlalpha/internal/view"
	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type priceResponse struct {
	Price     float64 `json:"price"`
	UpdatedAt int64   `json:"updatedAt"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("Failed to encode JSON response")
		}
	}
}

func (s *Server) handleAlerts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.createAlert(w, r)
	case http.MethodGet:
		s.listAlerts(w, r)
	default:
		s.respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
	}
}

// createAlert checks authorization before it even looks at the body: a bad
// token wins over a bad payload.
func (s *Server) createAlert(w http.ResponseWriter, r *http.Request) {
	if s.token == "" {
		s.logger.Error("ALERTS_API_TOKEN is not configured, rejecting ingest request")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "server misconfigured"})
		return
	}

	if r.Header.Get("Authorization") != "Bearer "+s.token {
		s.respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
		return
	}

	var req createAlertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON payload"})
		return
	}

	alert, validationErrors := validateAlert(req)
	if len(validationErrors) > 0 {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:   "validation failed",
			Details: validationErrors,
		})
		return
	}

	id, err := s.alerts.Insert(r.Context(), alert)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create alert")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create alert"})
		return
	}

	metrics.AlertsCreated.Inc()
	s.respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	alertType := r.URL.Query().Get("type")
	if !models.IsValidAlertType(alertType) {
		s.respondJSON(w, http.StatusBadRequest, errorResponse{Error: "type must be one of: classic, vision"})
		return
	}

	alerts, err := s.alerts.ListByType(r.Context(), alertType)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list alerts")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list alerts"})
		return
	}

	if alerts == nil {
		alerts = []models.Alert{}
	}

	s.respondJSON(w, http.StatusOK, alerts)
}

func (s *Server) handlePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	record, err := s.prices.GetLatest(r.Context(), s.referenceAsset)
	if err != nil {
		s.logger.WithError(err).Error("Failed to get latest price")
		s.respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to get latest price"})
		return
	}

	if record == nil {
		s.respondJSON(w, http.StatusNotFound, errorResponse{Error: "no price recorded yet"})
		return
	}

	s.respondJSON(w, http.StatusOK, priceResponse{
		Price:     record.Price,
		UpdatedAt: record.UpdatedAt.UnixMilli(),
	})
}

func (s *Server) handleRecommendations(title, alertType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := s.alerts.ListByType(r.Context(), alertType)
		if err != nil {
			// Render the loading state rather than an error page; the table
			// recovers on the next request.
			s.logger.WithError(err).Error("Failed to load alerts for recommendations view")
			alerts = nil
		} else if alerts == nil {
			alerts = []models.Alert{}
		}

		var fallbackPrice *float64
		if record, err := s.prices.GetLatest(r.Context(), s.referenceAsset); err != nil {
			s.logger.WithError(err).Warn("Failed to load fallback price for recommendations view")
		} else if record != nil {
			fallbackPrice = &record.Price
		}

		s.renderer.RenderTable(w, title, alertType, view.ComputeRows(alerts, fallbackPrice))
	}
}
