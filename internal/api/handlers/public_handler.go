package handlers

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/modelpricehub/ModelPriceHub-API/internal/config"
	"github.com/modelpricehub/ModelPriceHub-API/internal/model"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// PublicHandler 公开查询 HTTP 处理器，无需认证
type PublicHandler struct {
	vendorService *vendor.Service
	modelService  *model.Service
	currency      *config.CurrencyConfig
}

// NewPublicHandler 创建 PublicHandler 实例
func NewPublicHandler(vendorService *vendor.Service, modelService *model.Service, currency *config.CurrencyConfig) *PublicHandler {
	return &PublicHandler{
		vendorService: vendorService,
		modelService:  modelService,
		currency:      currency,
	}
}

// ListVendors 公开供应商列表
// @Summary 公开供应商列表
// @Tags public
// @Produce json
// @Success 200 {object} vendor.PaginatedVendors
// @Router /api/public/vendors [get]
func (h *PublicHandler) ListVendors(c *gin.Context) {
	var req vendor.ListVendorsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	page, err := h.vendorService.ListVendors(req)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list vendors")
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListModels 公开模型搜索
// @Summary 公开模型搜索
// @Tags public
// @Produce json
// @Success 200 {object} model.PaginatedModels
// @Router /api/public/models [get]
func (h *PublicHandler) ListModels(c *gin.Context) {
	var params model.SearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters", err.Error())
		return
	}

	page, err := h.modelService.ListModels(params)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list models")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetModel 公开模型详情
// @Summary 公开模型详情
// @Tags public
// @Produce json
// @Param id path int true "模型 ID"
// @Success 200 {object} model.ModelResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/public/models/{id} [get]
func (h *PublicHandler) GetModel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.modelService.GetModel(id)
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

// GetCurrency 货币展示配置
// @Summary 货币展示配置
// @Tags public
// @Produce json
// @Router /api/public/currency [get]
func (h *PublicHandler) GetCurrency(c *gin.Context) {
	rates := h.currency.ExchangeRates
	if rates == nil {
		rates = map[string]float64{}
	}

	// 可用货币由汇率表键派生，展示货币始终包含在内
	available := make([]string, 0, len(rates)+1)
	for code := range rates {
		available = append(available, code)
	}
	if h.currency.DisplayCurrency != "" {
		if _, ok := rates[h.currency.DisplayCurrency]; !ok {
			available = append(available, h.currency.DisplayCurrency)
		}
	}
	sort.Strings(available)

	c.JSON(http.StatusOK, gin.H{
		"displayCurrency":     h.currency.DisplayCurrency,
		"availableCurrencies": available,
		"exchangeRates":       rates,
	})
}
