package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/storage"
)

// UploadHandler 图片上传凭证 HTTP 处理器
type UploadHandler struct {
	presigner *storage.Presigner
}

// NewUploadHandler 创建 UploadHandler 实例
func NewUploadHandler(presigner *storage.Presigner) *UploadHandler {
	return &UploadHandler{presigner: presigner}
}

// PresignRequest 上传凭证请求
type PresignRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignUpload 签发直传上传凭证
// @Summary 签发直传上传凭证
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body PresignRequest true "文件信息"
// @Success 200 {object} storage.UploadCredentials
// @Failure 503 {object} ErrorResponse
// @Router /api/admin/uploads/presign [post]
func (h *UploadHandler) PresignUpload(c *gin.Context) {
	var req PresignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	creds, err := h.presigner.PresignUpload(c.Request.Context(), req.Filename, req.ContentType)
	if err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			respondError(c, http.StatusServiceUnavailable, "STORAGE_DISABLED", "Object storage is not configured")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to presign upload")
		return
	}

	c.JSON(http.StatusOK, creds)
}
