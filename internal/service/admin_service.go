package service

import (
	"github.com/nthcart/internal/models"
	"github.com/nthcart/internal/repository"
)

// AdminStats 管理端统计汇总
type AdminStats struct {
	TotalOrders            int64                 `json:"totalOrders"`
	TotalItemsPurchased    int64                 `json:"totalItemsPurchased"`
	TotalPurchaseAmount    string                `json:"totalPurchaseAmount"`
	TotalDiscountAmount    string                `json:"totalDiscountAmount"`
	DiscountCodesGenerated []models.DiscountCode `json:"discountCodesGenerated"`
	DiscountCodesUsed      []models.DiscountCode `json:"discountCodesUsed"`
}

// AdminService 管理端服务
type AdminService struct {
	statsRepo    repository.StatsRepository
	discountRepo repository.DiscountCodeRepository
}

// NewAdminService 创建管理端服务
func NewAdminService(statsRepo repository.StatsRepository, discountRepo repository.DiscountCodeRepository) *AdminService {
	return &AdminService{statsRepo: statsRepo, discountRepo: discountRepo}
}

// GetActiveDiscountCode 获取当前生效且未使用的优惠码，没有则返回 nil
func (s *AdminService) GetActiveDiscountCode() (*models.DiscountCode, error) {
	return s.discountRepo.FindActive()
}

// GetStatistics 汇总订单与优惠码统计
func (s *AdminService) GetStatistics() (*AdminStats, error) {
	totalOrders, err := s.statsRepo.CountOrders()
	if err != nil {
		return nil, err
	}
	amounts, err := s.statsRepo.SumOrderAmounts()
	if err != nil {
		return nil, err
	}
	totalItems, err := s.statsRepo.SumItemQuantity()
	if err != nil {
		return nil, err
	}
	codesGenerated, err := s.discountRepo.List()
	if err != nil {
		return nil, err
	}
	codesUsed, err := s.discountRepo.ListUsed()
	if err != nil {
		return nil, err
	}

	return &AdminStats{
		TotalOrders:            totalOrders,
		TotalItemsPurchased:    totalItems,
		TotalPurchaseAmount:    amounts.Total.Round(2).StringFixed(2),
		TotalDiscountAmount:    amounts.DiscountAmount.Round(2).StringFixed(2),
		DiscountCodesGenerated: codesGenerated,
		DiscountCodesUsed:      codesUsed,
	}, nil
}
