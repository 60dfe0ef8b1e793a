// Package http provides meta endpoints
package http

import (
	"net/http"
	"time"

	"dockit/internal/core/catalog"
	"dockit/internal/core/version"
	"dockit/internal/modkit/httpkit"
	"dockit/internal/services/atl"
)

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Catalog     *catalog.Catalog
	ATL         *atl.Index
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/catalog", h.catalog)
}

//
// Swagger DTOs and route docs
//

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"dockit-api"`
	Started string `json:"started"  example:"2026-08-01T13:00:00Z"`
	Now     string `json:"now"      example:"2026-08-01T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"catalog"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"no task mappings loaded"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-08-01T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"dockit-api"`
	Started string `json:"started" example:"2026-08-01T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// CatalogResponse reports what the interpretation pipeline has loaded
type CatalogResponse struct {
	Tasks        int      `json:"tasks"         example:"10"`
	MappingFiles []string `json:"mapping_files"`
	ATLMoments   int      `json:"atl_moments"   example:"6"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(_ *http.Request) (any, error) {
	cat := ReadyCheck{Name: "catalog", Status: "ok"}
	switch {
	case h.deps.Catalog == nil:
		cat.Status = "skipped"
	case h.deps.Catalog.Len() == 0:
		cat.Status = "fail"
		cat.Error = "no task mappings loaded"
	}

	times := ReadyCheck{Name: "atl", Status: "ok"}
	switch {
	case h.deps.ATL == nil:
		times.Status = "skipped"
	case h.deps.ATL.Moments() == 0:
		times.Status = "fail"
		times.Error = "no labor time rows loaded"
	}

	overall := "ok"
	if cat.Status != "ok" || times.Status != "ok" {
		overall = "degraded"
		if cat.Status == "fail" || times.Status == "fail" {
			overall = "fail"
		}
	}

	return ReadyResponse{
		Status: overall,
		Checks: []ReadyCheck{cat, times},
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}, nil
}

// swagger:route GET /meta/catalog Meta metaCatalog
// @Summary Loaded task mappings and labor time data
// @Tags Meta
// @Produce json
// @Success 200 type CatalogResponse ok
// @Router /meta/catalog [get]
func (h *handlers) catalog(_ *http.Request) (any, error) {
	out := CatalogResponse{MappingFiles: []string{}}
	if h.deps.Catalog != nil {
		out.Tasks = h.deps.Catalog.Len()
		out.MappingFiles = h.deps.Catalog.Files()
	}
	if h.deps.ATL != nil {
		out.ATLMoments = h.deps.ATL.Moments()
	}
	return out, nil
}
