package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/modelpricehub/ModelPriceHub-API/internal/codec"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
	"github.com/modelpricehub/ModelPriceHub-API/internal/vendor"
)

// batchKey 批次内去重键（大小写折叠后的供应商名与模型标识）
type batchKey struct {
	vendorName    string
	vendorModelID string
}

// ImportModels 批量导入模型
//
// 逐行独立处理：单行失败记入 Errors 并继续，整个批次始终返回成功。
// 自然键为 (vendorName, vendorModelId)，匹配到已有行则更新，否则创建；
// vendorModelId 缺省时以 model 名充当标识。供应商按名称精确查找，
// 不会被隐式创建。
func (s *Service) ImportModels(req *BulkImportRequest) (*BulkImportResult, error) {
	result := &BulkImportResult{Errors: []string{}}

	vendorCache := make(map[string]*models.Vendor)
	seen := make(map[batchKey]bool)

	for i, item := range req.Items {
		row := i + 1

		name := strings.TrimSpace(item.VendorName)
		if name == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: vendorName is required", row))
			continue
		}
		modelName := strings.TrimSpace(item.Model)
		if modelName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: model is required", row))
			continue
		}
		vendorModelID := strings.TrimSpace(item.VendorModelID)
		if vendorModelID == "" {
			vendorModelID = modelName
		}

		key := batchKey{
			vendorName:    strings.ToLower(name),
			vendorModelID: strings.ToLower(vendorModelID),
		}
		if seen[key] {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate entry %s/%s", row, name, vendorModelID))
			continue
		}
		seen[key] = true

		v, ok := vendorCache[name]
		if !ok {
			found, err := s.vendorRepo.FindByName(name)
			if err != nil {
				if errors.Is(err, vendor.ErrVendorNotFound) {
					result.Errors = append(result.Errors, fmt.Sprintf("row %d: vendor %q not found", row, name))
					continue
				}
				return nil, err
			}
			v = found
			vendorCache[name] = v
		}

		existing, err := s.repo.FindByVendorModel(v.ID, vendorModelID)
		if err != nil && !errors.Is(err, ErrModelNotFound) {
			return nil, err
		}

		if existing != nil {
			if err := s.repo.UpdateFields(existing, bulkUpdateFields(&item, modelName)); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
				continue
			}
			result.Updated++
			continue
		}

		if err := s.repo.Create(bulkNewModel(&item, v.ID, modelName, vendorModelID)); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

// bulkNewModel 由导入行构造新模型实体
func bulkNewModel(item *BulkModelItem, vendorID uint, modelName, vendorModelID string) *models.Model {
	m := &models.Model{
		VendorID:        vendorID,
		Model:           modelName,
		VendorModelID:   vendorModelID,
		ModelCapability: codec.EncodeStringList(item.ModelCapability),
		PriceData:       codec.EncodePriceData(item.PriceData),
		Categories:      codec.EncodeStringList(item.Categories),
		License:         codec.EncodeStringList(item.License),
		Status:          models.ModelStatusEnabled,
	}
	if item.Description != nil {
		m.Description = *item.Description
	}
	if item.ModelImage != nil {
		m.ModelImage = *item.ModelImage
	}
	m.MaxContextTokens = item.MaxContextTokens
	m.MaxOutputTokens = item.MaxOutputTokens
	if item.ModelURL != nil {
		m.ModelURL = *item.ModelURL
	}
	if item.PriceModel != nil {
		m.PriceModel = *item.PriceModel
	}
	if item.PriceCurrency != nil {
		m.PriceCurrency = *item.PriceCurrency
	}
	if item.ReleaseDate != nil {
		t := item.ReleaseDate.Time
		m.ReleaseDate = &t
	}
	if item.Note != nil {
		m.Note = *item.Note
	}
	if item.Status != nil {
		m.Status = models.ModelStatus(*item.Status)
	}
	return m
}

// bulkUpdateFields 由导入行构造更新字段集，未携带的字段保持原值
// 模型标识作为匹配键不参与更新
func bulkUpdateFields(item *BulkModelItem, modelName string) map[string]interface{} {
	fields := map[string]interface{}{
		"model": modelName,
	}
	if item.Description != nil {
		fields["description"] = *item.Description
	}
	if item.ModelImage != nil {
		fields["model_image"] = *item.ModelImage
	}
	if item.MaxContextTokens != nil {
		fields["max_context_tokens"] = *item.MaxContextTokens
	}
	if item.MaxOutputTokens != nil {
		fields["max_output_tokens"] = *item.MaxOutputTokens
	}
	if item.ModelCapability != nil {
		fields["model_capability"] = codec.EncodeStringList(item.ModelCapability)
	}
	if item.ModelURL != nil {
		fields["model_url"] = *item.ModelURL
	}
	if item.PriceModel != nil {
		fields["price_model"] = *item.PriceModel
	}
	if item.PriceCurrency != nil {
		fields["price_currency"] = *item.PriceCurrency
	}
	if item.PriceData != nil {
		fields["price_data"] = codec.EncodePriceData(item.PriceData)
	}
	if item.Categories != nil {
		fields["categories"] = codec.EncodeStringList(item.Categories)
	}
	if item.ReleaseDate != nil {
		fields["release_date"] = item.ReleaseDate.Time
	}
	if item.Note != nil {
		fields["note"] = *item.Note
	}
	if item.License != nil {
		fields["license"] = codec.EncodeStringList(item.License)
	}
	if item.Status != nil {
		fields["status"] = models.ModelStatus(*item.Status)
	}
	return fields
}
