package handler

import (
	"net/http"
	"runtime"
	"time"

	"auction-live-api/pkg/apierror"
	"auction-live-api/pkg/response"
)

// Runner reports whether a background loop is alive.
type Runner interface {
	IsRunning() bool
}

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	name      string
	version   string
	engine    Runner
	startTime time.Time
}

// New creates a new handler. engine may be nil, in which case readiness
// only reports the API itself.
func New(name, version string, engine Runner) *Handler {
	return &Handler{
		name:      name,
		version:   version,
		engine:    engine,
		startTime: time.Now(),
	}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{
		{Name: "api", Status: "ok"},
	}
	if h.engine != nil {
		status := "ok"
		if !h.engine.IsRunning() {
			status = "stopped"
		}
		checks = append(checks, Check{Name: "tick_engine", Status: status})
	}

	for _, check := range checks {
		if check.Status != "ok" {
			response.Error(w, apierror.ServiceUnavailable(check.Name+" is "+check.Status))
			return
		}
	}

	response.OK(w, ReadyResponse{
		Ready:     true,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	})
}

// StatusResponse represents the unified status response for monitoring
type StatusResponse struct {
	Service       string  `json:"service"`
	Status        string  `json:"status"`
	Timestamp     string  `json:"timestamp"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	MemoryMB      float64 `json:"memory_mb"`
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024

	status := "ok"
	if h.engine != nil && !h.engine.IsRunning() {
		status = "degraded"
	}

	resp := StatusResponse{
		Service:       h.name,
		Status:        status,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		MemoryMB:      float64(int(memoryMB*100)) / 100,
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	response.OK(w, resp)
}
