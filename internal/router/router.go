package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/GreaLake/checkIn/config"
	"github.com/GreaLake/checkIn/internal/handler"
	"github.com/GreaLake/checkIn/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.CORSMiddleware())
	if config.Cfg.TracingEnabled {
		h.Use(middleware.OpenTelemetryMiddleware())
	}

	h.GET("/health", handler.Health)

	// 签到签退路由
	checkin := h.Group("/checkin")
	checkin.Use(middleware.AuthMiddleware())
	checkin.Use(middleware.GeneralRateLimitMiddleware())
	{
		checkin.POST("/checkin", middleware.CheckInRateLimitMiddleware(), handler.CheckIn)
		checkin.POST("/checkout", middleware.CheckInRateLimitMiddleware(), handler.CheckOut)
		checkin.GET("/status", handler.Status)
		checkin.GET("/status/:type", handler.StatusByType)
		checkin.GET("/today", handler.TodayRecords)
	}

	// 审批路由
	approval := h.Group("/approval")
	approval.Use(middleware.AuthMiddleware())
	approval.Use(middleware.GeneralRateLimitMiddleware())
	{
		approval.GET("/pending", handler.ListPending)
		approval.POST("/approve/:recordId", handler.Approve)
		approval.POST("/reject/:recordId", handler.Reject)
		approval.GET("/approved", handler.ListApproved)
		approval.GET("/rejected", handler.ListRejected)
	}

	// 考勤统计路由
	attendance := h.Group("/attendance")
	attendance.Use(middleware.AuthMiddleware())
	attendance.Use(middleware.GeneralRateLimitMiddleware())
	{
		attendance.GET("/records", handler.Records)
		attendance.GET("/statistics", handler.Statistics)
		attendance.GET("/user-statistics", handler.UserStatistics)
		attendance.GET("/monthly-summary", handler.MonthlySummary)
		attendance.GET("/projects", handler.ProjectList)
		attendance.GET("/project-statistics", handler.ProjectStatistics)
		attendance.GET("/export", middleware.ExportRateLimitMiddleware(), handler.Export)
	}
}
