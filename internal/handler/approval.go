package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/GreaLake/checkIn/internal/middleware"
	"github.com/GreaLake/checkIn/internal/model/dto"
	"github.com/GreaLake/checkIn/internal/service"
	"github.com/GreaLake/checkIn/pkg/errors"
	"github.com/GreaLake/checkIn/pkg/response"
)

// approverName 审批人署名取 JWT 姓名声明，缺失时退回用户 ID
func approverName(ctx context.Context, c *app.RequestContext) string {
	if name := middleware.GetUserName(ctx, c); name != "" {
		return name
	}
	if userID, ok := middleware.GetUserID(ctx, c); ok {
		return strconv.FormatInt(userID, 10)
	}
	return ""
}

// ListPending 待审批记录
// GET /approval/pending
func ListPending(ctx context.Context, c *app.RequestContext) {
	records, err := service.GetApprovalService().ListPending(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, records)
}

// Approve 审批通过
// POST /approval/approve/:recordId
func Approve(ctx context.Context, c *app.RequestContext) {
	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.RecordNotFound)
		return
	}

	// 请求体可为空，workContent 为可选修订
	var req dto.ApproveRequest
	_ = c.BindJSON(&req)

	record, err := service.GetApprovalService().Approve(ctx, recordID, approverName(ctx, c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, record)
}

// Reject 审批驳回
// POST /approval/reject/:recordId
func Reject(ctx context.Context, c *app.RequestContext) {
	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil {
		response.Error(ctx, c, errors.RecordNotFound)
		return
	}

	var req dto.RejectRequest
	_ = c.BindJSON(&req)

	record, err := service.GetApprovalService().Reject(ctx, recordID, approverName(ctx, c), &req)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, record)
}

// ListApproved 已通过记录
// GET /approval/approved
func ListApproved(ctx context.Context, c *app.RequestContext) {
	records, err := service.GetApprovalService().ListApproved(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, records)
}

// ListRejected 已驳回记录
// GET /approval/rejected
func ListRejected(ctx context.Context, c *app.RequestContext) {
	records, err := service.GetApprovalService().ListRejected(ctx)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, records)
}
