package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/GreaLake/checkIn/internal/middleware"
	"github.com/GreaLake/checkIn/internal/model/dto"
	"github.com/GreaLake/checkIn/internal/service"
	"github.com/GreaLake/checkIn/pkg/errors"
	"github.com/GreaLake/checkIn/pkg/response"
)

// CheckIn 签到
// POST /checkin/checkin
func CheckIn(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	var req dto.CheckInRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}
	if req.UserName == "" {
		req.UserName = middleware.GetUserName(ctx, c)
	}

	record, err := service.GetCheckInService().CheckIn(ctx, userID, &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, record)
}

// CheckOut 签退，失败消息统一带 "签退失败: " 前缀
// POST /checkin/checkout
func CheckOut(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	var req dto.CheckOutRequest
	if err := c.BindJSON(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	record, err := service.GetCheckInService().CheckOut(ctx, userID, &req)
	if err != nil {
		response.ErrorWithPrefix(ctx, c, "签退失败: ", err)
		return
	}

	response.Success(ctx, c, record)
}

// Status 三类打卡的当日状态
// GET /checkin/status
func Status(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	result, err := service.GetCheckInService().StatusAll(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, result)
}

// StatusByType 单一类型的当日状态
// GET /checkin/status/:type
func StatusByType(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	status, err := service.GetCheckInService().CurrentStatus(ctx, userID, c.Param("type"))
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, status)
}

// TodayRecords 当日全部打卡记录
// GET /checkin/today
func TodayRecords(ctx context.Context, c *app.RequestContext) {
	userID, ok := middleware.GetUserID(ctx, c)
	if !ok {
		response.Error(ctx, c, errors.InvalidUserID)
		return
	}

	records, err := service.GetCheckInService().TodayRecords(ctx, userID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, records)
}
