package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/model"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// ModelHandler 模型 HTTP 处理器
type ModelHandler struct {
	service *model.Service
}

// NewModelHandler 创建 ModelHandler 实例
func NewModelHandler(service *model.Service) *ModelHandler {
	return &ModelHandler{service: service}
}

// ListModels 分页搜索模型
// @Summary 分页搜索模型
// @Tags models
// @Produce json
// @Success 200 {object} model.PaginatedModels
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/models [get]
func (h *ModelHandler) ListModels(c *gin.Context) {
	var params model.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	page, err := h.service.ListModels(params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list models")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetModel 获取模型详情
// @Summary 获取模型详情
// @Tags models
// @Produce json
// @Param id path int true "模型 ID"
// @Success 200 {object} model.ModelResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/models/{id} [get]
func (h *ModelHandler) GetModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.service.GetModel(id)
	if err != nil {
		if errors.Is(err, model.ErrModelNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Model not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get model")
		return
	}

	c.JSON(http.StatusOK, found)
}

// CreateModel 创建模型
// @Summary 创建模型
// @Tags models
// @Accept json
// @Produce json
// @Param model body model.CreateModelRequest true "模型信息"
// @Success 201 {object} model.ModelResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/models [post]
func (h *ModelHandler) CreateModel(c *gin.Context) {
	var req model.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	created, err := h.service.CreateModel(&req)
	if err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(c, http.StatusBadRequest, "VENDOR_NOT_FOUND", "Referenced vendor does not exist")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create model")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateModel 部分更新模型
// @Summary 部分更新模型
// @Tags models
// @Accept json
// @Produce json
// @Param id path int true "模型 ID"
// @Param model body model.UpdateModelRequest true "更新字段"
// @Success 200 {object} model.ModelResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/models/{id} [put]
func (h *ModelHandler) UpdateModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req model.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	updated, err := h.service.UpdateModel(id, &req)
	if err != nil {
		if errors.Is(err, model.ErrModelNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Model not found")
			return
		}
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(c, http.StatusBadRequest, "VENDOR_NOT_FOUND", "Referenced vendor does not exist")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update model")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteModel 删除模型
// @Summary 删除模型
// @Tags models
// @Param id path int true "模型 ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/models/{id} [delete]
func (h *ModelHandler) DeleteModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteModel(id); err != nil {
		if errors.Is(err, model.ErrModelNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Model not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete model")
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportModels 导出全部模型
// @Summary 导出全部模型为批量条目
// @Tags models
// @Produce json
// @Success 200 {array} model.BulkModelItem
// @Router /api/admin/models/export [get]
func (h *ModelHandler) ExportModels(c *gin.Context) {
	items, err := h.service.ExportModels()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to export models")
		return
	}

	// 导出为裸数组，导出结果可直接作为导入请求的 items 字段
	c.JSON(http.StatusOK, items)
}

// ImportModels 批量导入模型
// @Summary 批量导入模型
// @Tags models
// @Accept json
// @Produce json
// @Param batch body model.BulkImportRequest true "导入条目"
// @Success 200 {object} model.BulkImportResult
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/models/import [post]
func (h *ModelHandler) ImportModels(c *gin.Context) {
	var req model.BulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	result, err := h.service.ImportModels(&req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to import models")
		return
	}

	c.JSON(http.StatusOK, result)
}
