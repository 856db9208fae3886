package service

import "errors"

// 业务错误，由 handler 层通过 errors.Is 映射为 HTTP 状态码。
var (
	ErrInvalidCartItem    = errors.New("cart item invalid")
	ErrCartEmpty          = errors.New("cart is empty")
	ErrCartZeroTotal      = errors.New("cart total value is zero")
	ErrCheckoutFailed     = errors.New("checkout failed")
	ErrOrderFetchFailed   = errors.New("failed to retrieve order details after creation")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
