package models

import "time"

// VendorStatus 供应商状态
type VendorStatus string

const (
	// VendorStatusEnabled 启用
	VendorStatusEnabled VendorStatus = "enabled"
	// VendorStatusDisabled 停用
	VendorStatusDisabled VendorStatus = "disabled"
)

// Vendor 供应商模型
// 名称按约定唯一（批量导入时作为自然键使用），不做硬约束
type Vendor struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(100);not null;index" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	VendorImage string       `gorm:"type:varchar(500)" json:"vendorImage"`
	URL         string       `gorm:"type:varchar(500)" json:"url"`
	APIURL      string       `gorm:"type:varchar(500)" json:"apiUrl"`
	Note        string       `gorm:"type:text" json:"note"`
	Status      VendorStatus `gorm:"type:varchar(20);not null;default:'enabled';index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	// 存储层声明级联删除，服务层另有引用保护（见 vendor.Service.DeleteVendor）
	Models []Model `gorm:"foreignKey:VendorID;constraint:OnDelete:CASCADE" json:"models,omitempty"`
}

// TableName 指定表名
func (Vendor) TableName() string {
	return "vendors"
}
