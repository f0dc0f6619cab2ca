package models

import "time"

// ModelStatus 模型状态
type ModelStatus string

const (
	// ModelStatusEnabled 启用
	ModelStatusEnabled ModelStatus = "enabled"
	// ModelStatusDisabled 停用
	ModelStatusDisabled ModelStatus = "disabled"
	// ModelStatusOutdated 已过时
	ModelStatusOutdated ModelStatus = "outdated"
)

// 价格模式取值（price_data 的结构由此判别）
const (
	PriceModelToken  = "token"
	PriceModelCall   = "call"
	PriceModelTiered = "tiered"
	PriceModelFree   = "free"
)

// Model AI 模型条目
// 多值字段（capability/license/categories）与结构化价格数据
// 以 JSON 字符串形式存放在平面列中，编解码统一经过 codec 包
type Model struct {
	ID               uint        `gorm:"primaryKey" json:"id"`
	VendorID         uint        `gorm:"not null;index" json:"vendor_id"`
	Model            string      `gorm:"type:varchar(200);not null;index" json:"model"`
	VendorModelID    string      `gorm:"type:varchar(200);index" json:"vendor_model_id"`
	Description      string      `gorm:"type:text" json:"description"`
	ModelImage       string      `gorm:"type:varchar(500)" json:"model_image"`
	MaxContextTokens *int        `json:"max_context_tokens"`
	MaxOutputTokens  *int        `json:"max_output_tokens"`
	ModelCapability  string      `gorm:"type:text" json:"modelCapability"`
	ModelURL         string      `gorm:"type:varchar(500)" json:"modelUrl"`
	PriceModel       string      `gorm:"type:varchar(20)" json:"priceModel"`
	PriceCurrency    string      `gorm:"type:varchar(10)" json:"priceCurrency"`
	PriceData        string      `gorm:"type:text" json:"priceData"`
	Categories       string      `gorm:"type:text" json:"categories"`
	ReleaseDate      *time.Time  `gorm:"type:date;index" json:"releaseDate"`
	Note             string      `gorm:"type:text" json:"note"`
	License          string      `gorm:"type:text" json:"license"`
	Status           ModelStatus `gorm:"type:varchar(20);not null;default:'enabled';index" json:"status"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`

	Vendor Vendor `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
}

// TableName 指定表名
func (Model) TableName() string {
	return "models"
}
