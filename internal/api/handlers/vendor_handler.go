package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// VendorHandler 供应商 HTTP 处理器
type VendorHandler struct {
	service *vendor.Service
}

// NewVendorHandler 创建 VendorHandler 实例
func NewVendorHandler(service *vendor.Service) *VendorHandler {
	return &VendorHandler{service: service}
}

// CreateVendor 创建供应商
// @Summary 创建供应商
// @Tags vendors
// @Accept json
// @Produce json
// @Param vendor body vendor.CreateVendorRequest true "供应商信息"
// @Success 201 {object} vendor.VendorResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/admin/vendors [post]
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	var req vendor.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	created, err := h.service.CreateVendor(req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create vendor")
		return
	}

	c.JSON(http.StatusCreated, vendor.ToVendorResponse(created))
}

// ListVendors 查询供应商列表
// @Summary 查询供应商列表
// @Tags vendors
// @Produce json
// @Success 200 {object} vendor.PaginatedVendors
// @Router /api/admin/vendors [get]
func (h *VendorHandler) ListVendors(c *gin.Context) {
	var req vendor.ListVendorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	page, err := h.service.ListVendors(req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vendors")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetVendor 获取单个供应商
// @Summary 获取单个供应商
// @Tags vendors
// @Produce json
// @Param id path int true "供应商 ID"
// @Success 200 {object} vendor.VendorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/vendors/{id} [get]
func (h *VendorHandler) GetVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.service.GetVendor(id)
	if err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get vendor")
		return
	}

	c.JSON(http.StatusOK, vendor.ToVendorResponse(found))
}

// UpdateVendor 更新供应商
// @Summary 更新供应商
// @Tags vendors
// @Accept json
// @Produce json
// @Param id path int true "供应商 ID"
// @Param vendor body vendor.UpdateVendorRequest true "更新字段"
// @Success 200 {object} vendor.VendorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/vendors/{id} [put]
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req vendor.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request parameters", err.Error())
		return
	}

	updated, err := h.service.UpdateVendor(id, req)
	if err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update vendor")
		return
	}

	c.JSON(http.StatusOK, vendor.ToVendorResponse(updated))
}

// DeleteVendor 删除供应商
// @Summary 删除供应商
// @Tags vendors
// @Param id path int true "供应商 ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/admin/vendors/{id} [delete]
func (h *VendorHandler) DeleteVendor(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteVendor(id); err != nil {
		if errors.Is(err, vendor.ErrVendorNotFound) {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Vendor not found")
			return
		}
		if errors.Is(err, vendor.ErrVendorHasModels) {
			respondError(c, http.StatusBadRequest, "VENDOR_HAS_MODELS", "Vendor still has models and cannot be deleted")
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to delete vendor")
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID 解析路径中的数字 ID
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid resource ID")
		return 0, false
	}
	return uint(id), true
}
