package repository

import (
	"errors"
	"time"

	"github.com/nthcart/internal/models"

	"gorm.io/gorm"
)

// DiscountCodeRepository 优惠码数据访问接口
type DiscountCodeRepository interface {
	FindActiveByCode(code string) (*models.DiscountCode, error)
	FindActive() (*models.DiscountCode, error)
	Create(code *models.DiscountCode) error
	MarkUsed(id uint, orderID uint) error
	DeactivateAll() error
	List() ([]models.DiscountCode, error)
	ListUsed() ([]models.DiscountCode, error)
	WithTx(tx *gorm.DB) *GormDiscountCodeRepository
}

// GormDiscountCodeRepository GORM 实现
type GormDiscountCodeRepository struct {
	db *gorm.DB
}

// NewDiscountCodeRepository 创建优惠码仓库
func NewDiscountCodeRepository(db *gorm.DB) *GormDiscountCodeRepository {
	return &GormDiscountCodeRepository{db: db}
}

// WithTx 绑定事务
func (r *GormDiscountCodeRepository) WithTx(tx *gorm.DB) *GormDiscountCodeRepository {
	if tx == nil {
		return r
	}
	return &GormDiscountCodeRepository{db: tx}
}

// FindActiveByCode 查找可用优惠码（码匹配且生效、未使用），未命中返回 nil
func (r *GormDiscountCodeRepository) FindActiveByCode(code string) (*models.DiscountCode, error) {
	var discountCode models.DiscountCode
	err := r.db.Where("code = ? AND is_active = ? AND is_used = ?", code, true, false).First(&discountCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discountCode, nil
}

// FindActive 查找当前生效且未使用的优惠码，未命中返回 nil
func (r *GormDiscountCodeRepository) FindActive() (*models.DiscountCode, error) {
	var discountCode models.DiscountCode
	err := r.db.Where("is_active = ? AND is_used = ?", true, false).First(&discountCode).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discountCode, nil
}

// Create 创建优惠码
func (r *GormDiscountCodeRepository) Create(code *models.DiscountCode) error {
	return r.db.Create(code).Error
}

// MarkUsed 将优惠码标记为已使用并回写使用订单
func (r *GormDiscountCodeRepository) MarkUsed(id uint, orderID uint) error {
	return r.db.Model(&models.DiscountCode{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_used":          true,
			"is_active":        false,
			"order_used_in_id": orderID,
			"updated_at":       time.Now(),
		}).Error
}

// DeactivateAll 批量失效当前所有生效优惠码
func (r *GormDiscountCodeRepository) DeactivateAll() error {
	return r.db.Model(&models.DiscountCode{}).
		Where("is_active = ?", true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		}).Error
}

// List 获取全部优惠码（按创建时间倒序）
func (r *GormDiscountCodeRepository) List() ([]models.DiscountCode, error) {
	codes := make([]models.DiscountCode, 0)
	if err := r.db.Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// ListUsed 获取已使用优惠码（按创建时间倒序）
func (r *GormDiscountCodeRepository) ListUsed() ([]models.DiscountCode, error) {
	codes := make([]models.DiscountCode, 0)
	if err := r.db.Where("is_used = ?", true).Order("created_at desc").Find(&codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}
