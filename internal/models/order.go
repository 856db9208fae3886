package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                        // 主键
	OrderNo        string         `gorm:"uniqueIndex;not null" json:"orderNo"`                         // 订单编号
	UserID         string         `gorm:"type:varchar(64);index;not null" json:"userId"`               // 用户ID
	Subtotal       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`       // 折前金额
	DiscountCode   *string        `gorm:"type:varchar(64)" json:"discountCode"`                        // 使用的优惠码（冗余快照，非外键）
	DiscountAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"discountAmount"` // 优惠金额
	Total          Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"`          // 实付金额
	CreatedAt      time.Time      `gorm:"index" json:"createdAt"`                                      // 创建时间
	UpdatedAt      time.Time      `gorm:"index" json:"updatedAt"`                                      // 更新时间
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                              // 软删除时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
