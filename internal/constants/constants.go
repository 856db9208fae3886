package constants

// 优惠码常量
const (
	DiscountCodePrefix   = "DISCOUNT-" // 自动生成优惠码的前缀
	DiscountCodeLength   = 8           // 随机后缀长度
	DefaultDiscountRate  = 10          // 默认折扣百分比
	DefaultNthOrderCount = 5           // 默认每 N 单生成一张新码
)

// 订单编号前缀
const (
	OrderNoPrefix = "NC"
)
