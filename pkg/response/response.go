package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/GreaLake/checkIn/pkg/errors"
)

// Envelope 统一响应格式，移动端依赖 success/errorMessage 两个字段，不可变更。
type Envelope struct {
	Data         interface{} `json:"data,omitempty"`
	ErrorMessage string      `json:"errorMessage,omitempty"`
	Success      bool        `json:"success"`
}

// Success 返回成功响应
func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// Error 返回失败响应。业务错误（Definition）沿用原系统约定以 200 返回，
// success=false 由客户端判断；非业务错误按 500 处理。
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := http.StatusInternalServerError
	if _, ok := err.(errors.Definition); ok {
		statusCode = http.StatusOK
	}

	c.JSON(statusCode, Envelope{
		Success:      false,
		ErrorMessage: err.Error(),
	})
}

// ErrorWithPrefix 返回失败响应并在消息前拼接场景前缀，如 "签退失败: "。
func ErrorWithPrefix(ctx context.Context, c *app.RequestContext, prefix string, err error) {
	statusCode := http.StatusInternalServerError
	if _, ok := err.(errors.Definition); ok {
		statusCode = http.StatusOK
	}

	c.JSON(statusCode, Envelope{
		Success:      false,
		ErrorMessage: prefix + err.Error(),
	})
}

// BindError 请求体解析失败的响应
func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, Envelope{
		Success:      false,
		ErrorMessage: err.Error(),
	})
}
