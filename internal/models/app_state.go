package models

import (
	"time"
)

// AppState 应用计数状态（单行）
// 说明：order_count 记录累计成功结算数，用于识别第 N 单；
// 行本身即序列化点，事务内的自增更新持有行锁。
type AppState struct {
	ID         string    `gorm:"type:varchar(32);primarykey" json:"id"` // 固定为 singleton
	OrderCount int64     `gorm:"not null;default:0" json:"orderCount"`  // 累计订单数
	UpdatedAt  time.Time `json:"updatedAt"`                             // 更新时间
}

// AppStateSingletonID 单行主键值
const AppStateSingletonID = "singleton"

// TableName 指定表名
func (AppState) TableName() string {
	return "app_state"
}
