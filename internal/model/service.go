package model

import (
	"strings"

	"github.com/modelpricehub/ModelPriceHub-API/internal/codec"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
	"github.com/modelpricehub/ModelPriceHub-API/internal/pricing"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// Service 模型业务逻辑层
type Service struct {
	repo       *Repository
	vendorRepo *vendor.Repository
}

// NewService 创建 Service 实例
func NewService(repo *Repository, vendorRepo *vendor.Repository) *Service {
	return &Service{repo: repo, vendorRepo: vendorRepo}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListModels 分页搜索模型列表
//
// 价格排序无法下推到 SQL（排序键来自编码后的价格 JSON），此时取出
// 全部匹配行，在内存中按价格排序后再切出请求的分页窗口。
func (s *Service) ListModels(params SearchParams) (*PaginatedModels, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}
	pageSize := params.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	priceSort := params.Sort == "price_asc" || params.Sort == "price_desc"

	query := SearchQuery{
		VendorID:         params.VendorID,
		VendorName:       params.VendorName,
		ModelName:        params.Model,
		VendorModelID:    params.VendorModelID,
		Description:      params.Description,
		MinContextTokens: params.MinContextTokens,
		MaxContextTokens: params.MaxContextTokens,
		Capabilities:     ParseCSV(params.Capabilities),
		PriceModel:       params.PriceModel,
		PriceCurrency:    params.PriceCurrency,
		Licenses:         ParseCSV(params.License),
		Categories:       ParseCSV(params.Categories),
		Status:           params.Status,
		Search:           params.Search,
		Sort:             params.Sort,
		Offset:           (page - 1) * pageSize,
		Limit:            pageSize,
	}
	if priceSort {
		// 价格排序交给内存阶段，数据库侧用缺省次序取全集
		query.Sort = ""
		query.FetchAll = true
	}

	items, total, err := s.repo.Search(query)
	if err != nil {
		return nil, err
	}

	if priceSort {
		pricing.SortModels(items, params.Sort == "price_desc")
		items = sliceWindow(items, (page-1)*pageSize, pageSize)
	}

	responses := make([]ModelResponse, 0, len(items))
	for _, m := range items {
		responses = append(responses, ToModelResponse(m))
	}

	return &PaginatedModels{
		Items:    responses,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// sliceWindow 从已排序的全集切出分页窗口，越界时返回空切片
func sliceWindow(items []*models.Model, offset, limit int) []*models.Model {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// CreateModel 创建模型（校验供应商存在）
func (s *Service) CreateModel(req *CreateModelRequest) (*ModelResponse, error) {
	if _, err := s.vendorRepo.FindByID(req.VendorID); err != nil {
		return nil, err
	}

	status := models.ModelStatusEnabled
	if req.Status != "" {
		status = models.ModelStatus(req.Status)
	}

	m := &models.Model{
		VendorID:         req.VendorID,
		Model:            strings.TrimSpace(req.Model),
		VendorModelID:    strings.TrimSpace(req.VendorModelID),
		Description:      req.Description,
		ModelImage:       req.ModelImage,
		MaxContextTokens: req.MaxContextTokens,
		MaxOutputTokens:  req.MaxOutputTokens,
		ModelCapability:  codec.EncodeStringList(req.ModelCapability),
		ModelURL:         req.ModelURL,
		PriceModel:       req.PriceModel,
		PriceCurrency:    req.PriceCurrency,
		PriceData:        codec.EncodePriceData(req.PriceData),
		Categories:       codec.EncodeStringList(req.Categories),
		Note:             req.Note,
		License:          codec.EncodeStringList(req.License),
		Status:           status,
	}
	if req.ReleaseDate != nil {
		t := req.ReleaseDate.Time
		m.ReleaseDate = &t
	}

	if err := s.repo.Create(m); err != nil {
		return nil, err
	}

	created, err := s.repo.FindByID(m.ID)
	if err != nil {
		return nil, err
	}
	resp := ToModelResponse(created)
	return &resp, nil
}

// GetModel 获取模型详情
func (s *Service) GetModel(id uint) (*ModelResponse, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := ToModelResponse(m)
	return &resp, nil
}

// UpdateModel 部分更新模型，未携带的字段保持原值
func (s *Service) UpdateModel(id uint, req *UpdateModelRequest) (*ModelResponse, error) {
	m, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.VendorID != nil {
		if _, err := s.vendorRepo.FindByID(*req.VendorID); err != nil {
			return nil, err
		}
		fields["vendor_id"] = *req.VendorID
	}
	if req.Model != nil {
		fields["model"] = strings.TrimSpace(*req.Model)
	}
	if req.VendorModelID != nil {
		fields["vendor_model_id"] = strings.TrimSpace(*req.VendorModelID)
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.ModelImage != nil {
		fields["model_image"] = *req.ModelImage
	}
	if req.MaxContextTokens != nil {
		fields["max_context_tokens"] = *req.MaxContextTokens
	}
	if req.MaxOutputTokens != nil {
		fields["max_output_tokens"] = *req.MaxOutputTokens
	}
	if req.ModelCapability.Present {
		fields["model_capability"] = codec.EncodeStringList(req.ModelCapability.Value)
	}
	if req.ModelURL != nil {
		fields["model_url"] = *req.ModelURL
	}
	if req.PriceModel != nil {
		fields["price_model"] = *req.PriceModel
	}
	if req.PriceCurrency != nil {
		fields["price_currency"] = *req.PriceCurrency
	}
	if req.PriceData.Present {
		fields["price_data"] = codec.EncodePriceData(req.PriceData.Value)
	}
	if req.Categories.Present {
		fields["categories"] = codec.EncodeStringList(req.Categories.Value)
	}
	if req.ReleaseDate != nil {
		fields["release_date"] = req.ReleaseDate.Time
	}
	if req.Note != nil {
		fields["note"] = *req.Note
	}
	if req.License.Present {
		fields["license"] = codec.EncodeStringList(req.License.Value)
	}
	if req.Status != nil {
		fields["status"] = models.ModelStatus(*req.Status)
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateFields(m, fields); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	resp := ToModelResponse(updated)
	return &resp, nil
}

// DeleteModel 删除模型
func (s *Service) DeleteModel(id uint) error {
	return s.repo.Delete(id)
}

// ExportModels 导出全部模型为批量导入条目
func (s *Service) ExportModels() ([]BulkModelItem, error) {
	items, err := s.repo.FindAllWithVendor()
	if err != nil {
		return nil, err
	}
	exported := make([]BulkModelItem, 0, len(items))
	for _, m := range items {
		exported = append(exported, ToBulkItem(m))
	}
	return exported, nil
}
