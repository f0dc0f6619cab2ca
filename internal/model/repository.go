package model

import (
	"errors"
	"strings"

	"github.com/modelpricehub/ModelPriceHub-API/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrModelNotFound 模型不存在
	ErrModelNotFound = errors.New("model not found")
)

// Repository 模型数据访问层
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建 Repository 实例
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SearchQuery 模型搜索的谓词集合
// 零值/nil 的谓词不参与过滤，全部谓词按 AND 组合
type SearchQuery struct {
	VendorID         *uint
	VendorName       string
	ModelName        string
	VendorModelID    string
	Description      string
	MinContextTokens *int
	MaxContextTokens *int
	Capabilities     []string
	PriceModel       string
	PriceCurrency    string
	Licenses         []string
	Categories       []string
	Status           string
	Search           string
	Sort             string
	Offset           int
	Limit            int
	FetchAll         bool
}

// Search 执行谓词查询（联表供应商），返回结果与不受分页影响的总数
//
// FetchAll 为 true 时忽略分页窗口返回全部匹配行，供调用方做内存价格
// 排序后自行切片。该路径会物化整个匹配集，目录规模以数万行为上限。
func (r *Repository) Search(q SearchQuery) ([]*models.Model, int64, error) {
	var total int64
	if err := r.applyFilters(q).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.applyFilters(q).Order(orderClause(q.Sort))
	if !q.FetchAll {
		query = query.Offset(q.Offset).Limit(q.Limit)
	}

	var items []*models.Model
	if err := query.Preload("Vendor").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// applyFilters 组装谓词（count 与 find 各自调用，避免复用已消费的链）
func (r *Repository) applyFilters(q SearchQuery) *gorm.DB {
	query := r.db.Model(&models.Model{}).
		Joins("JOIN vendors ON vendors.id = models.vendor_id")

	if q.VendorID != nil {
		query = query.Where("models.vendor_id = ?", *q.VendorID)
	}
	if q.VendorName != "" {
		query = query.Where("LOWER(vendors.name) LIKE ?", contains(q.VendorName))
	}
	if q.ModelName != "" {
		query = query.Where("LOWER(models.model) LIKE ?", contains(q.ModelName))
	}
	if q.VendorModelID != "" {
		query = query.Where("LOWER(models.vendor_model_id) LIKE ?", contains(q.VendorModelID))
	}
	if q.Description != "" {
		query = query.Where("LOWER(models.description) LIKE ?", contains(q.Description))
	}
	if q.MinContextTokens != nil {
		query = query.Where("models.max_context_tokens >= ?", *q.MinContextTokens)
	}
	if q.MaxContextTokens != nil {
		query = query.Where("models.max_context_tokens <= ?", *q.MaxContextTokens)
	}
	// 多值过滤：对编码后的 JSON 列做子串包含，逐个标签 AND
	for _, capability := range q.Capabilities {
		query = query.Where("models.model_capability LIKE ?", "%"+capability+"%")
	}
	for _, license := range q.Licenses {
		query = query.Where("models.license LIKE ?", "%"+license+"%")
	}
	for _, category := range q.Categories {
		query = query.Where("models.categories LIKE ?", "%"+category+"%")
	}
	if q.PriceModel != "" {
		query = query.Where("models.price_model = ?", q.PriceModel)
	}
	if q.PriceCurrency != "" {
		query = query.Where("models.price_currency = ?", q.PriceCurrency)
	}
	if q.Status != "" {
		query = query.Where("models.status = ?", q.Status)
	}
	if q.Search != "" {
		like := contains(q.Search)
		query = query.Where(
			"LOWER(models.model) LIKE ? OR LOWER(models.vendor_model_id) LIKE ? OR LOWER(models.description) LIKE ? OR LOWER(vendors.name) LIKE ?",
			like, like, like, like,
		)
	}

	return query
}

// orderClause 解析排序指令
// 可识别字段附加同向的 id 次序键，保证跨页分页的确定性；
// 未识别或缺省时回落到按创建时间倒序
func orderClause(sort string) string {
	if sort == "" {
		return "models.created_at DESC"
	}

	direction := "ASC"
	if strings.HasSuffix(sort, "_desc") {
		direction = "DESC"
	}

	var column string
	switch strings.SplitN(sort, "_", 2)[0] {
	case "vendor":
		column = "LOWER(vendors.name)"
	case "model":
		column = "LOWER(models.model)"
	case "release":
		column = "models.release_date"
	default:
		return "models.created_at DESC"
	}

	return column + " " + direction + ", models.id " + direction
}

// contains 大小写不敏感的子串匹配参数
func contains(value string) string {
	return "%" + strings.ToLower(value) + "%"
}

// FindByID 根据 ID 查找模型（带供应商）
func (r *Repository) FindByID(id uint) (*models.Model, error) {
	var m models.Model
	err := r.db.Preload("Vendor").First(&m, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindByVendorModel 按批量导入的自然键 (vendor_id, vendor_model_id) 查找
// 模型标识大小写不敏感
func (r *Repository) FindByVendorModel(vendorID uint, vendorModelID string) (*models.Model, error) {
	var m models.Model
	err := r.db.Where("vendor_id = ? AND LOWER(vendor_model_id) = ?", vendorID, strings.ToLower(vendorModelID)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindAllWithVendor 返回全部模型（带供应商），批量导出用
func (r *Repository) FindAllWithVendor() ([]*models.Model, error) {
	var items []*models.Model
	err := r.db.Preload("Vendor").Order("models.id ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Create 创建模型
func (r *Repository) Create(m *models.Model) error {
	return r.db.Create(m).Error
}

// UpdateFields 部分更新模型字段
func (r *Repository) UpdateFields(m *models.Model, fields map[string]interface{}) error {
	return r.db.Model(m).Updates(fields).Error
}

// Delete 删除模型（物理删除）
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&models.Model{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModelNotFound
	}
	return nil
}
