package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表
// 说明：下单时对购物车行的快照，创建后不再变更。
type OrderItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                               // 主键
	OrderID   uint           `gorm:"index;not null" json:"orderId"`                      // 订单ID
	ItemID    string         `gorm:"type:varchar(64);not null" json:"itemId"`            // 商品ID
	Name      string         `gorm:"not null" json:"name"`                               // 商品名称快照
	Price     Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	Quantity  int            `gorm:"not null" json:"quantity"`                           // 数量
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`                             // 创建时间
	UpdatedAt time.Time      `gorm:"index" json:"updatedAt"`                             // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
