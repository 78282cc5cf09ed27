package service

import "errors"

// 服务层统一错误定义
var (
	ErrInvalidParams = errors.New("参数无效")

	ErrUsernameExists     = errors.New("用户名已存在")
	ErrEmailExists        = errors.New("邮箱已存在")
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrPasswordTooWeak    = errors.New("密码强度不足")
	ErrUserNotFound       = errors.New("用户不存在")

	ErrFlowerNotFound        = errors.New("商品不存在")
	ErrFlowerNotAvailable    = errors.New("商品已下架")
	ErrFlowerInvalidCategory = errors.New("商品分类无效")
	ErrFlowerInvalidPrice    = errors.New("商品价格无效")
	ErrFlowerOutOfStock      = errors.New("商品库存不足")

	ErrCartEmpty        = errors.New("购物车为空")
	ErrCartItemNotFound = errors.New("购物车项不存在")
	ErrInvalidQuantity  = errors.New("数量无效")

	ErrAddressNotFound = errors.New("收货地址不存在")

	ErrOrderNotFound        = errors.New("订单不存在")
	ErrOrderFetchFailed     = errors.New("订单查询失败")
	ErrOrderUpdateFailed    = errors.New("订单更新失败")
	ErrOrderStatusInvalid   = errors.New("订单状态无效")
	ErrPaymentStatusInvalid = errors.New("支付状态无效")
	ErrPaymentMethodInvalid = errors.New("支付方式无效")
	ErrInvalidOrderItem     = errors.New("订单项无效")
	ErrDuplicateCheckout    = errors.New("重复提交订单")
)
