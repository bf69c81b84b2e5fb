package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gcbaptista/go-fuzzy-search/internal/logger"
	"github.com/gcbaptista/go-fuzzy-search/internal/metrics"
	"github.com/gcbaptista/go-fuzzy-search/services"
)

// DefaultMaxRequestBytes limits request bodies when Config leaves it unset.
const DefaultMaxRequestBytes = 1 << 20

// Config holds the dependencies of the HTTP layer.
type Config struct {
	Engine          services.QueryEngine
	Gatherer        prometheus.Gatherer // serves /metrics when set
	Metrics         *metrics.Metrics    // records HTTP metrics when set
	Logger          *log.Logger
	MaxRequestBytes int64
}

// API holds dependencies for API handlers, primarily the query engine.
type API struct {
	engine  services.QueryEngine
	started time.Time
}

// NewAPI creates a new API handler structure.
func NewAPI(engine services.QueryEngine) *API {
	return &API{
		engine:  engine,
		started: time.Now(),
	}
}

// SetupRoutes installs the middleware chain and every API route on router.
func SetupRoutes(router *gin.Engine, cfg Config) {
	if cfg.Logger == nil {
		cfg.Logger = logger.New("api")
	}
	if cfg.MaxRequestBytes <= 0 {
		cfg.MaxRequestBytes = DefaultMaxRequestBytes
	}
	apiHandler := NewAPI(cfg.Engine)

	router.Use(
		RequestIDMiddleware(),
		LoggingMiddleware(cfg.Logger),
		MetricsMiddleware(cfg.Metrics),
		CORSMiddleware(),
		RequestSizeLimitMiddleware(cfg.MaxRequestBytes),
	)

	// Health check route
	router.GET("/health", apiHandler.HealthCheckHandler)

	// Query routes
	router.POST("/search", apiHandler.SearchHandler)
	router.GET("/search", apiHandler.SearchQueryHandler)
	router.POST("/multi-search", apiHandler.MultiSearchHandler)
	router.GET("/complete", apiHandler.CompleteHandler)

	// Record routes
	recordRoutes := router.Group("/records")
	{
		recordRoutes.GET("", apiHandler.ListRecordsHandler)    // List all records
		recordRoutes.GET("/:id", apiHandler.GetRecordHandler) // Get a specific record
	}

	// Statistics routes
	router.GET("/stats", apiHandler.StatsHandler)
	if cfg.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}
}

// HealthCheckHandler reports service liveness and the size of the record set.
func (api *API) HealthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"records": api.engine.Len(),
		"uptime":  time.Since(api.started).Round(time.Second).String(),
	})
}

// CompleteHandler lists indexed words starting with the prefix parameter.
func (api *API) CompleteHandler(c *gin.Context) {
	limit, result := ValidateLimit(c.Query("limit"), DefaultCompleteLimit, MaxCompleteLimit)
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	prefix := c.Query("prefix")
	completions := api.engine.Complete(prefix, limit)
	if completions == nil {
		completions = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"prefix":      prefix,
		"completions": completions,
	})
}

// ListRecordsHandler returns every record in insertion order.
func (api *API) ListRecordsHandler(c *gin.Context) {
	records := api.engine.Records()
	c.JSON(http.StatusOK, gin.H{
		"records": records,
		"total":   len(records),
	})
}

// GetRecordHandler returns one record by ID.
func (api *API) GetRecordHandler(c *gin.Context) {
	id := c.Param("id")
	if result := ValidateRecordID(id); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	record, ok := api.engine.Get(id)
	if !ok {
		SendRecordNotFoundError(c, id)
		return
	}

	c.JSON(http.StatusOK, record)
}

// StatsHandler returns query and cache statistics.
func (api *API) StatsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"queries": api.engine.Stats(),
		"cache":   api.engine.CacheStats(),
	})
}
