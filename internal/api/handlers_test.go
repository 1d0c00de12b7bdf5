package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type MockAlertStore struct {
	mock.Mock
}

func (m *MockAlertStore) Insert(ctx context.Context, alert models.Alert) (string, error) {
	args := m.Called(ctx, alert)
	return args.String(0), args.Error(1)
}

func (m *MockAlertStore) ListByType(ctx context.Context, alertType string) ([]models.Alert, error) {
	args := m.Called(ctx, alertType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Alert), args.Error(1)
}

type MockPriceStore struct {
	mock.Mock
}

func (m *MockPriceStore) GetLatest(ctx context.Context, asset string) (*models.PriceRecord, error) {
	args := m.Called(ctx, asset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceRecord), args.Error(1)
}

func newTestLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func newTestServer(token string, alerts AlertStore, prices PriceStore) *Server {
	return NewServer(alerts, prices, token, "BTC-USD", newTestLogger())
}

func postAlert(s *Server, authHeader, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/alerts", strings.NewReader(body))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorResponse {
	t.Helper()
	var resp errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateAlert_AuthCheckedBeforeValidation(t *testing.T) {
	t.Parallel()

	server := newTestServer("secret", new(MockAlertStore), new(MockPriceStore))

	// Both the token and the body are bad; auth failure must win.
	rec := postAlert(server, "Bearer wrong", `{"asset": ""}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthorized", decodeError(t, rec).Error)
}

func TestCreateAlert_MissingAuthHeader(t *testing.T) {
	t.Parallel()

	server := newTestServer("secret", new(MockAlertStore), new(MockPriceStore))

	rec := postAlert(server, "", `{}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateAlert_MissingTokenConfiguration(t *testing.T) {
	t.Parallel()

	server := newTestServer("", new(MockAlertStore), new(MockPriceStore))

	rec := postAlert(server, "Bearer anything", `{}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "server misconfigured", decodeError(t, rec).Error)
}

func TestCreateAlert_MalformedJSON(t *testing.T) {
	t.Parallel()

	server := newTestServer("secret", new(MockAlertStore), new(MockPriceStore))

	rec := postAlert(server, "Bearer secret", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid JSON payload", decodeError(t, rec).Error)
}

func TestCreateAlert_CollectsAllValidationErrors(t *testing.T) {
	t.Parallel()

	server := newTestServer("secret", new(MockAlertStore), new(MockPriceStore))

	tests := []struct {
		name            string
		body            string
		expectedDetails int
	}{
		{
			name:            "missing everything required",
			body:            `{}`,
			expectedDetails: 3,
		},
		{
			name:            "missing asset and entryDate",
			body:            `{"entryPrice": 100}`,
			expectedDetails: 2,
		},
		{
			name:            "invalid entryDate only",
			body:            `{"asset": "AAPL", "entryDate": "someday", "entryPrice": 100}`,
			expectedDetails: 1,
		},
		{
			name:            "invalid alertType counts too",
			body:            `{"alertType": "bold"}`,
			expectedDetails: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postAlert(server, "Bearer secret", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, "validation failed", resp.Error)
			assert.Len(t, resp.Details, tt.expectedDetails)
		})
	}
}

func TestCreateAlert_Success(t *testing.T) {
	t.Parallel()

	alerts := new(MockAlertStore)
	alerts.On("Insert", mock.Anything, mock.MatchedBy(func(alert models.Alert) bool {
		return alert.Asset == "AAPL" &&
			alert.EntryDate == "2023-06-02" &&
			alert.EntryPrice == 180.95 &&
			alert.AlertType == models.AlertTypeClassic
	})).Return("alert-123", nil)

	server := newTestServer("secret", alerts, new(MockPriceStore))

	rec := postAlert(server, "Bearer secret", `{"asset": " AAPL ", "entryDate": "2023-06-02", "entryPrice": 180.95}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp map[string]string
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "alert-123", resp["id"])
	alerts.AssertExpectations(t)
}

func TestCreateAlert_NormalizesAlertType(t *testing.T) {
	t.Parallel()

	alerts := new(MockAlertStore)
	alerts.On("Insert", mock.Anything, mock.MatchedBy(func(alert models.Alert) bool {
		return alert.AlertType == models.AlertTypeVision
	})).Return("alert-456", nil)

	server := newTestServer("secret", alerts, new(MockPriceStore))

	rec := postAlert(server, "Bearer secret", `{"asset": "SOL", "entryDate": "2022-06-21", "entryPrice": 26.15, "alertType": "VISION"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	alerts.AssertExpectations(t)
}

func TestCreateAlert_StoreFailure(t *testing.T) {
	t.Parallel()

	alerts := new(MockAlertStore)
	alerts.On("Insert", mock.Anything, mock.Anything).Return("", assert.AnError)

	server := newTestServer("secret", alerts, new(MockPriceStore))

	rec := postAlert(server, "Bearer secret", `{"asset": "SOL", "entryDate": "2022-06-21", "entryPrice": 26.15}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListAlerts(t *testing.T) {
	t.Parallel()

	stored := []models.Alert{
		{ID: "1", Asset: "TSLA", EntryDate: "2023-06-02", EntryPrice: 213.97, AlertType: models.AlertTypeClassic},
	}

	alerts := new(MockAlertStore)
	alerts.On("ListByType", mock.Anything, models.AlertTypeClassic).Return(stored, nil)

	server := newTestServer("secret", alerts, new(MockPriceStore))

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?type=classic", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp []models.Alert
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
	assert.Equal(t, "TSLA", resp[0].Asset)
}

func TestListAlerts_RejectsUnknownType(t *testing.T) {
	t.Parallel()

	server := newTestServer("secret", new(MockAlertStore), new(MockPriceStore))

	req := httptest.NewRequest(http.MethodGet, "/api/alerts?type=bold", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPrice(t *testing.T) {
	t.Parallel()

	prices := new(MockPriceStore)
	prices.On("GetLatest", mock.Anything, "BTC-USD").Return(&models.PriceRecord{
		Asset:     "BTC-USD",
		Price:     65000.5,
		UpdatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}, nil)

	server := newTestServer("secret", new(MockAlertStore), prices)

	req := httptest.NewRequest(http.MethodGet, "/api/price", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp priceResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 65000.5, resp.Price)
}

func TestGetPrice_AbsentRecord(t *testing.T) {
	t.Parallel()

	prices := new(MockPriceStore)
	prices.On("GetLatest", mock.Anything, "BTC-USD").Return(nil, nil)

	server := newTestServer("secret", new(MockAlertStore), prices)

	req := httptest.NewRequest(http.MethodGet, "/api/price", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecommendationsPage(t *testing.T) {
	t.Parallel()

	stored := []models.Alert{
		{ID: "1", Asset: "AAPL", EntryDate: "2023-06-02", EntryPrice: 180.95, AlertType: models.AlertTypeClassic},
	}

	alerts := new(MockAlertStore)
	alerts.On("ListByType", mock.Anything, models.AlertTypeClassic).Return(stored, nil)

	prices := new(MockPriceStore)
	prices.On("GetLatest", mock.Anything, "BTC-USD").Return(&models.PriceRecord{
		Asset: "BTC-USD", Price: 361.9, UpdatedAt: time.Now(),
	}, nil)

	server := newTestServer("secret", alerts, prices)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/classic", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Buy AAPL")
	assert.Contains(t, body, "02 Jun 23")
	assert.Contains(t, body, "$180.95")
	assert.Contains(t, body, "+100.0%", "fallback price doubles the entry price")
}

func TestRecommendationsPage_EmptyState(t *testing.T) {
	t.Parallel()

	alerts := new(MockAlertStore)
	alerts.On("ListByType", mock.Anything, models.AlertTypeVision).Return([]models.Alert{}, nil)

	prices := new(MockPriceStore)
	prices.On("GetLatest", mock.Anything, "BTC-USD").Return(nil, nil)

	server := newTestServer("secret", alerts, prices)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/vision", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No vision recommendations yet")
}

func TestRecommendationsPage_StoreErrorRendersLoadingState(t *testing.T) {
	t.Parallel()

	alerts := new(MockAlertStore)
	alerts.On("ListByType", mock.Anything, models.AlertTypeClassic).Return(nil, assert.AnError)

	prices := new(MockPriceStore)
	prices.On("GetLatest", mock.Anything, "BTC-USD").Return(nil, nil)

	server := newTestServer("secret", alerts, prices)

	req := httptest.NewRequest(http.MethodGet, "/recommendations/classic", nil)
	rec := httptest.NewRecorder()
	server.Routes().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading classic recommendations")
}
