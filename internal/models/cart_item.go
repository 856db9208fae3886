package models

import (
	"time"
)

// CartItem 购物车项
// 说明：按 (user_id, item_id) 唯一；结算成功后整批硬删除，
// 故不使用软删除（软删除会占用唯一索引导致无法重新加购）。
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                      // 主键
	UserID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_item" json:"userId"` // 用户ID
	ItemID    string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_cart_user_item" json:"itemId"` // 商品ID
	Name      string    `gorm:"not null" json:"name"`                                      // 商品名称快照
	Price     Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`        // 单价
	Quantity  int       `gorm:"not null" json:"quantity"`                                  // 数量
	CreatedAt time.Time `gorm:"index" json:"createdAt"`                                    // 创建时间
	UpdatedAt time.Time `gorm:"index" json:"updatedAt"`                                    // 更新时间
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}
