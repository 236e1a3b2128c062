package http

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a backing service the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

const (
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
	checkUp        = "up"
	checkDown      = "down"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	timeout     time.Duration
	checks      map[string]Pinger
}

type HealthOption func(*HealthHandler)

// WithCheck probes p under name on every request. A nil p is skipped.
func WithCheck(name string, p Pinger) HealthOption {
	return func(h *HealthHandler) {
		if p != nil {
			h.checks[name] = p
		}
	}
}

func WithCheckTimeout(d time.Duration) HealthOption {
	return func(h *HealthHandler) { h.timeout = d }
}

func NewHealthHandler(serviceName, version string, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		serviceName: serviceName,
		version:     version,
		timeout:     time.Second,
		checks:      map[string]Pinger{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HealthCheck answers 503 with status "degraded" when any probe fails.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    statusHealthy,
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
		err := h.checks[name].Ping(pingCtx)
		cancel()

		if err != nil {
			resp.Checks[name] = checkDown
			resp.Status = statusDegraded
			continue
		}
		resp.Checks[name] = checkUp
	}

	status := http.StatusOK
	if resp.Status != statusHealthy {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, resp)
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
