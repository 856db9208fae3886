package repository

import (
	"errors"
	"time"

	"github.com/nthcart/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByUser(userID string) ([]models.CartItem, error)
	Upsert(item *models.CartItem) error
	ClearByUser(userID string) (int64, error)
	WithTx(tx *gorm.DB) *GormCartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) *GormCartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByUser 获取用户购物车项（按加入时间升序）
func (r *GormCartRepository) ListByUser(userID string) ([]models.CartItem, error) {
	items := make([]models.CartItem, 0)
	if err := r.db.Where("user_id = ?", userID).Order("created_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Upsert 添加或累加购物车项
// 已存在 (user_id, item_id) 时数量累加，并以本次值覆盖名称与单价；
// 调用后 item 为落库后的最终状态。
func (r *GormCartRepository) Upsert(item *models.CartItem) error {
	if item == nil {
		return nil
	}
	now := time.Now()
	var existing models.CartItem
	err := r.db.Where("user_id = ? AND item_id = ?", item.UserID, item.ItemID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item.CreatedAt = now
		item.UpdatedAt = now
		return r.db.Create(item).Error
	}
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"quantity":   gorm.Expr("quantity + ?", item.Quantity),
		"name":       item.Name,
		"price":      item.Price,
		"updated_at": now,
	}
	if err := r.db.Model(&models.CartItem{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
		return err
	}
	item.ID = existing.ID
	item.CreatedAt = existing.CreatedAt
	item.UpdatedAt = now
	item.Quantity += existing.Quantity
	return nil
}

// ClearByUser 清空购物车，返回删除行数
func (r *GormCartRepository) ClearByUser(userID string) (int64, error) {
	result := r.db.Where("user_id = ?", userID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
