package server

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cloud-ru/mcp-debt-planner-go/internal/config"
	"github.com/cloud-ru/mcp-debt-planner-go/internal/tools"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const version = "1.0.0"

// maxBodyBytes предельный размер тела запроса к инструменту
const maxBodyBytes = 1 << 20

type handler struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewRouter собирает HTTP-маршруты сервиса
func NewRouter(cfg *config.Config, registry *tools.Registry, logger *slog.Logger) *gin.Engine {
	h := &handler{registry: registry, logger: logger}

	router := gin.New()
	router.Use(gin.Recovery(), CORS(cfg.CORSOrigins), RequestID(), AccessLog(logger))

	router.GET("/health", h.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tools", h.listTools)
		v1.POST("/tools/:name", h.callTool)
	}

	return router
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": version,
		"time":    time.Now().Format(time.RFC3339),
	})
}

func (h *handler) listTools(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tools": h.registry.List()})
}

func (h *handler) callTool(c *gin.Context) {
	name := c.Param("name")

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var params map[string]interface{}
	if err := c.ShouldBindJSON(&params); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "тело запроса слишком большое"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "тело запроса должно быть JSON-объектом"})
		return
	}

	result, err := h.registry.Call(c.Request.Context(), name, params)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(c.Request.Context(), "tool call failed",
				"tool", name, "error", err, "request_id", c.GetString(requestIDKey))
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tool": name, "result": result})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tools.ErrUnknownTool):
		return http.StatusNotFound
	case errors.Is(err, tools.ErrInvalidParams):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
