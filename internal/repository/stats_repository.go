package repository

import (
	"github.com/nthcart/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StatsRepository 管理端聚合查询接口
// 说明：仅聚合统计数据，不承载业务规则。
type StatsRepository interface {
	CountOrders() (int64, error)
	SumOrderAmounts() (StatsAmountRow, error)
	SumItemQuantity() (int64, error)
}

// StatsAmountRow 订单金额聚合原始行
type StatsAmountRow struct {
	Total          decimal.Decimal
	DiscountAmount decimal.Decimal
}

// GormStatsRepository GORM 聚合实现
type GormStatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository 创建统计仓库
func NewStatsRepository(db *gorm.DB) *GormStatsRepository {
	return &GormStatsRepository{db: db}
}

// CountOrders 统计订单总数
func (r *GormStatsRepository) CountOrders() (int64, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumOrderAmounts 汇总订单实付与优惠金额（无订单时为 0）
func (r *GormStatsRepository) SumOrderAmounts() (StatsAmountRow, error) {
	result := StatsAmountRow{}
	err := r.db.Model(&models.Order{}).
		Select("COALESCE(SUM(total), 0) AS total, COALESCE(SUM(discount_amount), 0) AS discount_amount").
		Scan(&result).Error
	if err != nil {
		return StatsAmountRow{}, err
	}
	return result, nil
}

// SumItemQuantity 汇总订单项销量（无订单项时为 0）
func (r *GormStatsRepository) SumItemQuantity() (int64, error) {
	var quantity int64
	err := r.db.Model(&models.OrderItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&quantity).Error
	if err != nil {
		return 0, err
	}
	return quantity, nil
}
