// Package server exposes the synthetic dataset generator over HTTP for
// demo environments: generate a dataset in memory, inspect collections,
// and stream CSV/NDJSON exports.
package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/noshow/noshow/internal/export"
	"github.com/noshow/noshow/internal/synth"
	"github.com/noshow/noshow/pkg/pagination"
)

// GenerateHandler holds the most recently generated dataset and serves it
// over HTTP. A mutex guards the dataset: generation itself is
// single-threaded.
type GenerateHandler struct {
	mu      sync.Mutex
	dataset *synth.Dataset
	result  *synth.Result
	runID   string
}

// NewGenerateHandler creates a handler with no pre-generated data.
func NewGenerateHandler() *GenerateHandler {
	return &GenerateHandler{}
}

// RegisterRoutes registers dataset routes on the given Echo group.
func (h *GenerateHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/seed", h.handleSeed)
	g.POST("/reset", h.handleReset)
	g.GET("/summary", h.handleSummary)
	g.GET("/datasets/:entity", h.handleDataset)
	g.GET("/export/ndjson/:entity", h.handleExportNDJSON)
	g.GET("/export/csv/:entity", h.handleExportCSV)
}

// seedResponse wraps the generation result with a run identifier.
type seedResponse struct {
	RunID       string        `json:"runId"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Result      *synth.Result `json:"result"`
}

func (h *GenerateHandler) handleSeed(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	cfg := synth.DefaultConfig()
	if err := c.Bind(&cfg); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	gen := synth.NewGenerator(cfg)
	ds, result, err := gen.Generate()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	h.dataset = ds
	h.result = result
	h.runID = uuid.NewString()

	return c.JSON(http.StatusOK, seedResponse{
		RunID:       h.runID,
		GeneratedAt: time.Now().UTC(),
		Result:      result,
	})
}

func (h *GenerateHandler) handleReset(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.dataset = nil
	h.result = nil
	h.runID = ""
	return c.JSON(http.StatusOK, map[string]string{"status": "reset"})
}

func (h *GenerateHandler) handleSummary(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.result == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no dataset generated"})
	}
	return c.JSON(http.StatusOK, seedResponse{RunID: h.runID, Result: h.result})
}

func (h *GenerateHandler) handleDataset(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dataset == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no dataset generated"})
	}

	p := pagination.FromContext(c)
	switch c.Param("entity") {
	case "patients":
		return c.JSON(http.StatusOK, page(p, h.dataset.Patients))
	case "providers":
		return c.JSON(http.StatusOK, page(p, h.dataset.Providers))
	case "departments":
		return c.JSON(http.StatusOK, page(p, h.dataset.Departments))
	case "insurance":
		return c.JSON(http.StatusOK, page(p, h.dataset.Insurance))
	case "appointments":
		return c.JSON(http.StatusOK, page(p, h.dataset.Appointments))
	default:
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown entity"})
	}
}

func page[T any](p pagination.Params, records []T) *pagination.Response {
	start, end := p.Slice(len(records))
	return pagination.NewResponse(records[start:end], len(records), p.Limit, p.Offset)
}

func (h *GenerateHandler) handleExportNDJSON(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dataset == nil {
		return c.String(http.StatusNotFound, "no dataset generated")
	}
	entity := c.Param("entity")
	if !export.ValidEntity(entity) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown entity"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "application/x-ndjson")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteEntityNDJSON(c.Response().Writer, h.dataset, entity)
}

func (h *GenerateHandler) handleExportCSV(c echo.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.dataset == nil {
		return c.String(http.StatusNotFound, "no dataset generated")
	}
	entity := c.Param("entity")
	if !export.ValidEntity(entity) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "unknown entity"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().WriteHeader(http.StatusOK)
	return export.WriteEntityCSV(c.Response().Writer, h.dataset, entity)
}

// applyDefaults fills zero counts from the standard defaults so a partial
// JSON body behaves like the CLI defaults.
func applyDefaults(cfg *synth.Config) {
	def := synth.DefaultConfig()
	if cfg.PatientCount == 0 {
		cfg.PatientCount = def.PatientCount
	}
	if cfg.ProviderCount == 0 {
		cfg.ProviderCount = def.ProviderCount
	}
	if cfg.DepartmentCount == 0 {
		cfg.DepartmentCount = def.DepartmentCount
	}
	if cfg.AppointmentCount == 0 {
		cfg.AppointmentCount = def.AppointmentCount
	}
}
