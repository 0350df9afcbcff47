package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/GreaLake/checkIn/config"
	"github.com/GreaLake/checkIn/storage/database"
	"github.com/GreaLake/checkIn/storage/redis"
)

// Health 存活与依赖探活
// GET /health
func Health(ctx context.Context, c *app.RequestContext) {
	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{
		"database": "ok",
		"redis":    "ok",
	}

	if sqlDB, err := database.DB().DB(); err != nil || sqlDB.PingContext(checkCtx) != nil {
		checks["database"] = "unavailable"
		status = http.StatusServiceUnavailable
	}
	if err := redis.Client().Ping(checkCtx).Err(); err != nil {
		checks["redis"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, map[string]interface{}{
		"service": config.Cfg.ServiceName,
		"status":  checks,
		"time":    time.Now().Format(time.RFC3339),
	})
}
