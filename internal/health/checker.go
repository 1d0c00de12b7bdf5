package health

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Pinger is the slice of the database the ops endpoints need.
type Pinger interface {
	HealthCheck() error
}

// Checker serves the ops surface: liveness, readiness and metrics. Liveness
// and readiness are the same check here since the only dependency is the
// store.
type Checker struct {
	db     Pinger
	logger *logrus.Entry
}

type Status struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

func NewChecker(db Pinger, logger *logrus.Entry) *Checker {
	return &Checker{
		db:     db,
		logger: logger,
	}
}

func (c *Checker) Status() Status {
	services := make(map[string]string)
	overall := "healthy"

	if err := c.db.HealthCheck(); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		overall = "unhealthy"
		c.logger.WithError(err).Error("Database health check failed")
	} else {
		services["database"] = "healthy"
	}

	return Status{
		Status:    overall,
		Timestamp: time.Now(),
		Services:  services,
	}
}

func (c *Checker) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := c.Status()

	code := http.StatusOK
	if status.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		c.logger.WithError(err).Error("Failed to encode health response")
	}
}

func (c *Checker) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", c.handleHealth)
	mux.HandleFunc("/ready", c.handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func (c *Checker) StartServer(port string) *http.Server {
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Routes(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}

	go func() {
		c.logger.WithField("port", port).Info("Starting ops server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.WithError(err).Error("Ops server failed")
		}
	}()

	return server
}
