package api

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BalesJ1029/hodlalpha/internal/view"
	"github.com/BalesJ1029/hodlalpha/pkg/models"
)

type AlertStore interface {
	Insert(ctx context.Context, alert models.Alert) (string, error)
	ListByType(ctx context.Context, alertType string) ([]models.Alert, error)
}

type PriceStore interface {
	GetLatest(ctx context.Context, asset string) (*models.PriceRecord, error)
}

type Server struct {
	alerts         AlertStore
	prices         PriceStore
	token          string
	referenceAsset string
	renderer       *view.Renderer
	logger         *logrus.Entry
}

func NewServer(alerts AlertStore, prices PriceStore, token, referenceAsset string, logger *logrus.Entry) *Server {
	return &Server{
		alerts:         alerts,
		prices:         prices,
		token:          token,
		referenceAsset: referenceAsset,
		renderer:       view.NewRenderer(logger),
		logger:         logger,
	}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/alerts", s.handleAlerts)
	mux.HandleFunc("/api/price", s.handlePrice)
	mux.HandleFunc("/recommendations/classic", s.handleRecommendations("Core Trade Recommendations", models.AlertTypeClassic))
	mux.HandleFunc("/recommendations/vision", s.handleRecommendations("Vision Trade Recommendations", models.AlertTypeVision))
	return mux
}

func (s *Server) StartServer(port string) *http.Server {
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.WithField("port", port).Info("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("API server failed")
		}
	}()

	return server
}
