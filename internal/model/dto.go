package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/modelpricehub/ModelPriceHub-API/internal/codec"
	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
)

// dateLayout 日期字段的线上格式
const dateLayout = "2006-01-02"

// StringList 接受字符串或字符串数组的多值字段
// 单个字符串按单元素数组处理（与批量导入的宽容约定一致）
type StringList []string

// UnmarshalJSON 实现宽容解码：字符串、字符串数组、含数字的数组均可
func (l *StringList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		*l = nil
		return nil
	}

	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}

	var items []interface{}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, v)
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		}
	}
	*l = out
	return nil
}

// Date 线上以 YYYY-MM-DD 表示的日期
type Date struct {
	time.Time
}

// UnmarshalJSON 解析 YYYY-MM-DD
func (d *Date) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON 输出 YYYY-MM-DD
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// OptionalStringList 部分更新中区分「未携带」与「显式置空」的多值字段
// 字段出现时（含显式 null）UnmarshalJSON 才会被调用，null 与 [] 均清空列
type OptionalStringList struct {
	Present bool
	Value   StringList
}

// UnmarshalJSON 标记字段出现并按 StringList 的宽容规则解码
func (o *OptionalStringList) UnmarshalJSON(data []byte) error {
	o.Present = true
	return o.Value.UnmarshalJSON(data)
}

// OptionalPriceData 部分更新中区分「未携带」与「显式置空」的价格数据
type OptionalPriceData struct {
	Present bool
	Value   map[string]interface{}
}

// UnmarshalJSON 标记字段出现，null 解码为 nil 对象
func (o *OptionalPriceData) UnmarshalJSON(data []byte) error {
	o.Present = true
	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

// CreateModelRequest 创建模型请求
type CreateModelRequest struct {
	VendorID         uint                   `json:"vendor_id" binding:"required"`
	Model            string                 `json:"model" binding:"required"`
	VendorModelID    string                 `json:"vendor_model_id"`
	Description      string                 `json:"description"`
	ModelImage       string                 `json:"model_image"`
	MaxContextTokens *int                   `json:"max_context_tokens"`
	MaxOutputTokens  *int                   `json:"max_output_tokens"`
	ModelCapability  StringList             `json:"modelCapability"`
	ModelURL         string                 `json:"modelUrl"`
	PriceModel       string                 `json:"priceModel"`
	PriceCurrency    string                 `json:"priceCurrency"`
	PriceData        map[string]interface{} `json:"priceData"`
	Categories       StringList             `json:"categories"`
	ReleaseDate      *Date                  `json:"releaseDate"`
	Note             string                 `json:"note"`
	License          StringList             `json:"license"`
	Status           string                 `json:"status" binding:"omitempty,oneof=enabled disabled outdated"`
}

// UpdateModelRequest 更新模型请求
// 仅更新显式出现的字段；标量用指针、集合与价格用 Optional 包装判定是否出现
type UpdateModelRequest struct {
	VendorID         *uint              `json:"vendor_id"`
	Model            *string            `json:"model"`
	VendorModelID    *string            `json:"vendor_model_id"`
	Description      *string            `json:"description"`
	ModelImage       *string            `json:"model_image"`
	MaxContextTokens *int               `json:"max_context_tokens"`
	MaxOutputTokens  *int               `json:"max_output_tokens"`
	ModelCapability  OptionalStringList `json:"modelCapability"`
	ModelURL         *string            `json:"modelUrl"`
	PriceModel       *string            `json:"priceModel"`
	PriceCurrency    *string            `json:"priceCurrency"`
	PriceData        OptionalPriceData  `json:"priceData"`
	Categories       OptionalStringList `json:"categories"`
	ReleaseDate      *Date              `json:"releaseDate"`
	Note             *string            `json:"note"`
	License          OptionalStringList `json:"license"`
	Status           *string            `json:"status" binding:"omitempty,oneof=enabled disabled outdated"`
}

// SearchParams 模型搜索参数（固定可枚举的谓词集合）
// 多值过滤（capabilities/license/categories）以 CSV 传入
type SearchParams struct {
	VendorID         *uint  `form:"vendor_id"`
	VendorName       string `form:"vendor_name"`
	Model            string `form:"model"`
	VendorModelID    string `form:"vendor_model_id"`
	Description      string `form:"description"`
	MinContextTokens *int   `form:"min_context_tokens"`
	MaxContextTokens *int   `form:"max_context_tokens"`
	Capabilities     string `form:"capabilities"`
	PriceModel       string `form:"price_model"`
	PriceCurrency    string `form:"price_currency"`
	License          string `form:"license"`
	Categories       string `form:"categories"`
	Status           string `form:"status" binding:"omitempty,oneof=enabled disabled outdated"`
	Search           string `form:"search"`
	Sort             string `form:"sort"`
	Page             int    `form:"page"`
	PageSize         int    `form:"page_size"`
}

// ParseCSV 将逗号分隔的过滤值拆分为非空列表
func ParseCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// VendorSummary 模型响应内嵌的供应商摘要
type VendorSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ModelResponse 模型响应（多值字段与价格数据已解码）
type ModelResponse struct {
	ID               uint                   `json:"id"`
	VendorID         uint                   `json:"vendor_id"`
	Model            string                 `json:"model"`
	VendorModelID    string                 `json:"vendor_model_id"`
	Description      string                 `json:"description"`
	ModelImage       string                 `json:"model_image"`
	MaxContextTokens *int                   `json:"max_context_tokens"`
	MaxOutputTokens  *int                   `json:"max_output_tokens"`
	ModelCapability  []string               `json:"modelCapability"`
	ModelURL         string                 `json:"modelUrl"`
	PriceModel       string                 `json:"priceModel"`
	PriceCurrency    string                 `json:"priceCurrency"`
	PriceData        map[string]interface{} `json:"priceData"`
	Categories       []string               `json:"categories"`
	ReleaseDate      *Date                  `json:"releaseDate"`
	Note             string                 `json:"note"`
	License          []string               `json:"license"`
	Status           string                 `json:"status"`
	Vendor           VendorSummary          `json:"vendor"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// PaginatedModels 模型分页响应
type PaginatedModels struct {
	Items    []ModelResponse `json:"items"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// BulkModelItem 批量导入/导出的行格式（camelCase，供应商以名称引用）
type BulkModelItem struct {
	VendorName       string                 `json:"vendorName" binding:"required"`
	Model            string                 `json:"model" binding:"required"`
	VendorModelID    string                 `json:"vendorModelId"`
	Description      *string                `json:"description,omitempty"`
	ModelImage       *string                `json:"modelImage,omitempty"`
	MaxContextTokens *int                   `json:"maxContextTokens,omitempty"`
	MaxOutputTokens  *int                   `json:"maxOutputTokens,omitempty"`
	ModelCapability  StringList             `json:"modelCapability,omitempty"`
	ModelURL         *string                `json:"modelUrl,omitempty"`
	PriceModel       *string                `json:"priceModel,omitempty"`
	PriceCurrency    *string                `json:"priceCurrency,omitempty"`
	PriceData        map[string]interface{} `json:"priceData,omitempty"`
	Categories       StringList             `json:"categories,omitempty"`
	ReleaseDate      *Date                  `json:"releaseDate,omitempty"`
	Note             *string                `json:"note,omitempty"`
	License          StringList             `json:"license,omitempty"`
	Status           *string                `json:"status,omitempty"`
}

// BulkImportRequest 批量导入请求
type BulkImportRequest struct {
	Items []BulkModelItem `json:"items" binding:"required"`
}

// BulkImportResult 批量导入结果
// 行级失败记录为字符串，整个批次始终按成功返回
type BulkImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Errors  []string `json:"errors"`
}

// ToModelResponse 转换为响应（解码多值与价格字段）
func ToModelResponse(m *models.Model) ModelResponse {
	resp := ModelResponse{
		ID:               m.ID,
		VendorID:         m.VendorID,
		Model:            m.Model,
		VendorModelID:    m.VendorModelID,
		Description:      m.Description,
		ModelImage:       m.ModelImage,
		MaxContextTokens: m.MaxContextTokens,
		MaxOutputTokens:  m.MaxOutputTokens,
		ModelCapability:  codec.DecodeStringList(m.ModelCapability),
		ModelURL:         m.ModelURL,
		PriceModel:       m.PriceModel,
		PriceCurrency:    m.PriceCurrency,
		PriceData:        codec.DecodePriceData(m.PriceData),
		Categories:       codec.DecodeStringList(m.Categories),
		Note:             m.Note,
		License:          codec.DecodeStringList(m.License),
		Status:           string(m.Status),
		Vendor:           VendorSummary{ID: m.Vendor.ID, Name: m.Vendor.Name},
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
	if m.ReleaseDate != nil {
		resp.ReleaseDate = &Date{Time: *m.ReleaseDate}
	}
	return resp
}

// ToBulkItem 转换为批量导出行（供应商 ID 替换为名称）
func ToBulkItem(m *models.Model) BulkModelItem {
	item := BulkModelItem{
		VendorName:    m.Vendor.Name,
		Model:         m.Model,
		VendorModelID: m.VendorModelID,
		PriceData:     codec.DecodePriceData(m.PriceData),
	}
	if caps := codec.DecodeStringList(m.ModelCapability); len(caps) > 0 {
		item.ModelCapability = caps
	}
	if cats := codec.DecodeStringList(m.Categories); len(cats) > 0 {
		item.Categories = cats
	}
	if lics := codec.DecodeStringList(m.License); len(lics) > 0 {
		item.License = lics
	}
	if m.Description != "" {
		item.Description = strPtr(m.Description)
	}
	if m.ModelImage != "" {
		item.ModelImage = strPtr(m.ModelImage)
	}
	if m.MaxContextTokens != nil {
		item.MaxContextTokens = m.MaxContextTokens
	}
	if m.MaxOutputTokens != nil {
		item.MaxOutputTokens = m.MaxOutputTokens
	}
	if m.ModelURL != "" {
		item.ModelURL = strPtr(m.ModelURL)
	}
	if m.PriceModel != "" {
		item.PriceModel = strPtr(m.PriceModel)
	}
	if m.PriceCurrency != "" {
		item.PriceCurrency = strPtr(m.PriceCurrency)
	}
	if m.ReleaseDate != nil {
		item.ReleaseDate = &Date{Time: *m.ReleaseDate}
	}
	if m.Note != "" {
		item.Note = strPtr(m.Note)
	}
	status := string(m.Status)
	item.Status = &status
	return item
}

func strPtr(s string) *string {
	return &s
}
