package handlers

import (
	"html/template"
	"net/http"
	"time"

	_ "usercrud/docs"
	"usercrud/internal/logger"
	"usercrud/internal/metrics"
	"usercrud/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services, templates and logging.
type Handler struct {
	services *service.Service
	tmpl     *template.Template
	log      *logger.Logger

	metrics         *metrics.Metrics
	metricsEndpoint http.Handler
	swagger         bool
	wsInterval      time.Duration
}

// Option customizes optional Handler features.
type Option func(*Handler)

// WithMetrics records per-request metrics and, if exposition is non-nil,
// serves it on GET /metrics.
func WithMetrics(m *metrics.Metrics, exposition http.Handler) Option {
	return func(h *Handler) {
		h.metrics = m
		h.metricsEndpoint = exposition
	}
}

// WithSwagger toggles the /swagger UI.
func WithSwagger(enabled bool) Option {
	return func(h *Handler) {
		h.swagger = enabled
	}
}

// MaxWSInterval is the longest push interval the /ws feed accepts.
const MaxWSInterval = maxInterval

// WithWSInterval sets the default push interval of the /ws list feed.
// Values above MaxWSInterval are clamped to it; non-positive values are ignored.
func WithWSInterval(d time.Duration) Option {
	return func(h *Handler) {
		switch {
		case d > maxInterval:
			h.wsInterval = maxInterval
		case d > 0:
			h.wsInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies. log may be nil.
func NewHandler(services *service.Service, tmpl *template.Template, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		services:   services,
		tmpl:       tmpl,
		log:        log,
		wsInterval: defaultInterval,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestMiddleware)

	if h.swagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	if h.metricsEndpoint != nil {
		router.GET("/metrics", gin.WrapH(h.metricsEndpoint))
	}

	router.GET("/health", h.health)

	// Live list feed (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	router.GET("/", h.index)
	h.registerUserRoutes(router)

	return router
}

func (h *Handler) registerUserRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("", h.createUser)
		users.PUT("/:id", h.updateUser)
		users.DELETE("/:id", h.deleteUser)
		users.GET("/:id/edit", h.editForm)
	}
}
