package controller

import (
	"context"
	"time"

	"learning_platform_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// Health godoc
// @Summary Liveness and dependency health
// @Tags health
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (ctl *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := gin.H{"status": "ok"}

	sqlDB, err := ctl.DB.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status["database"] = "down"
		status["status"] = "degraded"
	} else {
		status["database"] = "up"
	}

	if ctl.Redis != nil {
		if err := ctl.Redis.Ping(ctx).Err(); err != nil {
			status["redis"] = "down"
			status["status"] = "degraded"
		} else {
			status["redis"] = "up"
		}
	}

	util.Success(c, status)
}
