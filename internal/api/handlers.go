package api

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"chembldb/internal/chembl"
	"chembldb/internal/models"
	"chembldb/internal/observability"
)

const defaultPageLimit = 50

// Handler serves the compound store over HTTP. The store pointer stays
// nil until the first load finishes; until then every data route answers
// 503 so the server can boot instantly while the dump loads.
type Handler struct {
	mu      sync.RWMutex
	store   *chembl.Store
	summary *chembl.Summary

	log     *zap.Logger
	metrics *observability.Collector
}

func NewHandler(store *chembl.Store, log *zap.Logger, metrics *observability.Collector) *Handler {
	h := &Handler{log: log, metrics: metrics}
	if store != nil {
		h.SetStore(store)
	}
	return h
}

// SetStore swaps in a freshly loaded store. Requests already holding the
// old pointer finish against the old map; nobody sees a half-built one.
func (h *Handler) SetStore(s *chembl.Store) {
	summary := s.Summarize()
	h.mu.Lock()
	h.store = s
	h.summary = summary
	h.mu.Unlock()
	h.log.Debug("serving new store", zap.Int("records", s.Len()))
}

func (h *Handler) current() (*chembl.Store, *chembl.Summary) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.store, h.summary
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	api := e.Group("/api")
	api.GET("/compounds", h.ListCompounds)
	api.GET("/compounds/sample", h.SampleCompounds)
	api.GET("/compounds/:id", h.GetCompound)
	api.GET("/pairs", h.GetPairs)
	api.GET("/summary", h.GetSummary)
	api.GET("/stats", h.GetStats)
}

func getPaginationParams(c echo.Context, defaultLimit int) (limit, offset int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err = strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

func loadingResponse(c echo.Context) error {
	return c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: "dataset loading"})
}

func (h *Handler) Health(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return c.JSON(http.StatusOK, models.HealthResponse{Status: "loading"})
	}
	return c.JSON(http.StatusOK, models.HealthResponse{Status: "ok", Records: store.Len()})
}

func (h *Handler) GetCompound(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return loadingResponse(c)
	}

	id := c.Param("id")
	compound, ok := store.Get(id)
	if !ok {
		h.metrics.LookupMisses.Inc()
		return c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "compound not found"})
	}
	h.metrics.LookupHits.Inc()
	return c.JSON(http.StatusOK, compound)
}

func (h *Handler) ListCompounds(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return loadingResponse(c)
	}

	limit, offset := getPaginationParams(c, defaultPageLimit)
	return c.JSON(http.StatusOK, models.CompoundPage{
		Data:   store.Page(offset, limit),
		Total:  store.Len(),
		Limit:  limit,
		Offset: offset,
	})
}

func (h *Handler) SampleCompounds(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return loadingResponse(c)
	}

	size, err := strconv.Atoi(c.QueryParam("size"))
	if err != nil || size < 0 {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "size must be a non-negative integer"})
	}
	h.metrics.SampleRequests.Inc()
	return c.JSON(http.StatusOK, store.Sample(size))
}

func (h *Handler) GetPairs(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return loadingResponse(c)
	}

	smiles, ids := store.SMILESIDPairs()
	return c.JSON(http.StatusOK, models.PairsResponse{SMILES: smiles, IDs: ids})
}

func (h *Handler) GetSummary(c echo.Context) error {
	_, summary := h.current()
	if summary == nil {
		return loadingResponse(c)
	}
	return c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetStats(c echo.Context) error {
	store, _ := h.current()
	if store == nil {
		return loadingResponse(c)
	}

	st := store.Stats()
	return c.JSON(http.StatusOK, models.StatsResponse{
		Records:       store.Len(),
		Lines:         st.Lines,
		SkippedLines:  st.SkippedLines,
		HeaderSkipped: st.HeaderSkipped,
		DuplicateIDs:  st.DuplicateIDs,
		LoadedAt:      st.LoadedAt,
	})
}
