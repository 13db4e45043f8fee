package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	BaseHandler
	db      *gorm.DB
	appName string
	version string
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db *gorm.DB, appName, version string) *HealthHandler {
	return &HealthHandler{db: db, appName: appName, version: version}
}

// RegisterRoutes registers health check routes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

// Health reports service liveness and database connectivity
func (h *HealthHandler) Health(c *gin.Context) {
	status := "ok"
	database := "ok"

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
			database = "unreachable"
		}
	}

	h.Success(c, gin.H{
		"status":   status,
		"name":     h.appName,
		"version":  h.version,
		"database": database,
	})
}
