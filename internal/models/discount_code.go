package models

import (
	"time"

	"gorm.io/gorm"
)

// DiscountCode 优惠码
// 约定：同一时刻最多一个 is_active 且未使用的优惠码，由业务层维护。
type DiscountCode struct {
	ID              uint           `gorm:"primarykey" json:"id"`                                         // 主键
	Code            string         `gorm:"uniqueIndex;not null" json:"code"`                             // 优惠码
	DiscountPercent Money          `gorm:"type:decimal(5,2);not null;default:0" json:"discountPercent"` // 折扣百分比
	IsActive        bool           `gorm:"not null;default:false;index" json:"isActive"`                 // 是否生效
	IsUsed          bool           `gorm:"not null;default:false" json:"isUsed"`                         // 是否已使用
	OrderUsedInID   *uint          `gorm:"index" json:"orderUsedInId"`                                   // 使用该码的订单ID
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`                                       // 创建时间
	UpdatedAt       time.Time      `gorm:"index" json:"updatedAt"`                                       // 更新时间
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`                                               // 软删除时间
}

// TableName 指定表名
func (DiscountCode) TableName() string {
	return "discount_codes"
}
