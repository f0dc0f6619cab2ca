package handlers

import "github.com/gin-gonic/gin"

// ErrorResponse 统一错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail 错误详情
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// respondError 输出错误响应
func respondError(c *gin.Context, status int, code, message string, details ...string) {
	detail := ErrorDetail{Code: code, Message: message}
	if len(details) > 0 {
		detail.Details = details[0]
	}
	c.JSON(status, ErrorResponse{Error: detail})
}
