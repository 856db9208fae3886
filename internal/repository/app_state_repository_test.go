package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/nthcart/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTest(t *testing.T, name string, dst ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(dst...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return db
}

func TestIncrementOrderCountCreatesSingleton(t *testing.T) {
	db := setupRepositoryTest(t, "app_state_create", &models.AppState{})
	repo := NewAppStateRepository(db)

	count, err := repo.GetOrderCount()
	if err != nil {
		t.Fatalf("get count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 before first increment, got %d", count)
	}

	count, err = repo.IncrementOrderCount()
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 after first increment, got %d", count)
	}

	var rows int64
	if err := db.Model(&models.AppState{}).Count(&rows).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single state row, got %d", rows)
	}
}

func TestIncrementOrderCountSequence(t *testing.T) {
	db := setupRepositoryTest(t, "app_state_sequence", &models.AppState{})
	repo := NewAppStateRepository(db)

	for want := int64(1); want <= 5; want++ {
		got, err := repo.IncrementOrderCount()
		if err != nil {
			t.Fatalf("increment %d failed: %v", want, err)
		}
		if got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}

	count, err := repo.GetOrderCount()
	if err != nil {
		t.Fatalf("get count failed: %v", err)
	}
	if count != 5 {
		t.Fatalf("expected 5, got %d", count)
	}
}

func TestIncrementOrderCountInsideTransaction(t *testing.T) {
	db := setupRepositoryTest(t, "app_state_tx", &models.AppState{})
	repo := NewAppStateRepository(db)

	// 事务回滚后计数不可见
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := repo.WithTx(tx).IncrementOrderCount(); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	if err == nil {
		t.Fatalf("expected transaction error")
	}

	count, err := repo.GetOrderCount()
	if err != nil {
		t.Fatalf("get count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rolled back counter to stay 0, got %d", count)
	}
}
