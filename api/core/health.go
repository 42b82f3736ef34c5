package core

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/arkadem/startup-board/config"
)

var startTime = time.Now()

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Handle(c *gin.Context) {
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		dbStatus = err.Error()
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		dbStatus = err.Error()
	}

	status := http.StatusOK
	overall := "ok"
	if dbStatus != "ok" {
		status = http.StatusServiceUnavailable
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":  overall,
		"uptime":  time.Since(startTime).Round(time.Second).String(),
		"version": config.Version,
		"checks": gin.H{
			"database": dbStatus,
		},
	})
}
