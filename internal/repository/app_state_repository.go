package repository

import (
	"errors"
	"time"

	"github.com/nthcart/internal/models"

	"gorm.io/gorm"
)

// AppStateRepository 应用计数状态访问接口
// IncrementOrderCount 必须在结算事务内调用：UPDATE 持有的行锁
// 即为并发结算识别第 N 单的序列化点。
type AppStateRepository interface {
	IncrementOrderCount() (int64, error)
	GetOrderCount() (int64, error)
	WithTx(tx *gorm.DB) *GormAppStateRepository
}

// GormAppStateRepository GORM 实现
type GormAppStateRepository struct {
	db *gorm.DB
}

// NewAppStateRepository 创建应用状态仓库
func NewAppStateRepository(db *gorm.DB) *GormAppStateRepository {
	return &GormAppStateRepository{db: db}
}

// WithTx 绑定事务
func (r *GormAppStateRepository) WithTx(tx *gorm.DB) *GormAppStateRepository {
	if tx == nil {
		return r
	}
	return &GormAppStateRepository{db: tx}
}

// IncrementOrderCount 原子自增订单计数并返回新值
// 单行不存在时创建并置 1（upsert 语义）。
func (r *GormAppStateRepository) IncrementOrderCount() (int64, error) {
	result := r.db.Model(&models.AppState{}).
		Where("id = ?", models.AppStateSingletonID).
		Updates(map[string]interface{}{
			"order_count": gorm.Expr("order_count + 1"),
			"updated_at":  time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		state := models.AppState{
			ID:         models.AppStateSingletonID,
			OrderCount: 1,
		}
		if err := r.db.Create(&state).Error; err != nil {
			return 0, err
		}
		return state.OrderCount, nil
	}
	return r.GetOrderCount()
}

// GetOrderCount 读取当前订单计数（单行不存在时为 0）
func (r *GormAppStateRepository) GetOrderCount() (int64, error) {
	var state models.AppState
	err := r.db.Where("id = ?", models.AppStateSingletonID).First(&state).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return state.OrderCount, nil
}
