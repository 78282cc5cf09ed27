package i18n

// catalog 消息目录（按语言分组）
var catalog = map[string]map[string]string{
	"en": {
		"error.invalid_params":      "Invalid request parameters",
		"error.unauthorized":        "Unauthorized",
		"error.forbidden":           "Forbidden",
		"error.not_found":           "Resource not found",
		"error.internal_error":      "Internal server error",
		"error.rate_limited":        "Too many requests, please try again later",
		"error.auth_header_missing": "Authorization header is missing",
		"error.auth_header_invalid": "Authorization header is invalid",
		"error.token_invalid":       "Token is invalid or expired",
		"error.jwt_secret_missing":  "JWT secret is not configured",

		"error.username_exists":     "Username is already taken",
		"error.email_exists":        "Email is already registered",
		"error.invalid_credentials": "Invalid email or password",
		"error.password_too_weak":   "Password must be at least %d characters",
		"error.user_not_found":      "User does not exist",
		"error.login_rate_limited":  "Too many login attempts, please try again later",

		"error.flower_not_found":        "Flower does not exist",
		"error.flower_invalid_category": "Invalid flower category",
		"error.flower_invalid_price":    "Invalid flower price",
		"error.flower_out_of_stock":     "Insufficient stock for %s",
		"error.flower_inactive":         "Flower is not available",

		"error.cart_empty":             "Cart is empty",
		"error.cart_item_not_found":    "Cart item does not exist",
		"error.cart_quantity_invalid":  "Quantity must be at least 1",

		"error.address_not_found": "Shipping address does not exist",

		"error.order_not_found":               "Order does not exist",
		"error.order_invalid_status":          "Invalid order status",
		"error.order_invalid_payment_status":  "Invalid payment status",
		"error.order_invalid_payment_method":  "Invalid payment method",
		"error.order_duplicate_checkout":      "An identical order was just placed, please wait a moment",
		"error.order_item_invalid":            "Order contains an invalid item",
		"error.order_create_failed":           "Failed to create order",
		"error.order_fetch_failed":            "Failed to fetch order",
		"error.order_update_failed":           "Failed to update order",

		"error.rate_limit_unavailable": "Rate limiter is temporarily unavailable",
	},
	"zh-CN": {
		"error.invalid_params":      "请求参数无效",
		"error.unauthorized":        "未登录或登录已过期",
		"error.forbidden":           "没有权限执行该操作",
		"error.not_found":           "资源不存在",
		"error.internal_error":      "服务器内部错误",
		"error.rate_limited":        "请求过于频繁，请稍后再试",
		"error.auth_header_missing": "缺少认证头",
		"error.auth_header_invalid": "认证头格式无效",
		"error.token_invalid":       "Token 无效或已过期",
		"error.jwt_secret_missing":  "JWT 密钥未配置",

		"error.username_exists":     "用户名已被占用",
		"error.email_exists":        "邮箱已被注册",
		"error.invalid_credentials": "邮箱或密码错误",
		"error.password_too_weak":   "密码长度至少 %d 位",
		"error.user_not_found":      "用户不存在",
		"error.login_rate_limited":  "登录尝试过于频繁，请稍后再试",

		"error.flower_not_found":        "商品不存在",
		"error.flower_invalid_category": "商品分类无效",
		"error.flower_invalid_price":    "商品价格无效",
		"error.flower_out_of_stock":     "%s 库存不足",
		"error.flower_inactive":         "商品已下架",

		"error.cart_empty":            "购物车为空",
		"error.cart_item_not_found":   "购物车项不存在",
		"error.cart_quantity_invalid": "数量至少为 1",

		"error.address_not_found": "收货地址不存在",

		"error.order_not_found":              "订单不存在",
		"error.order_invalid_status":         "订单状态无效",
		"error.order_invalid_payment_status": "支付状态无效",
		"error.order_invalid_payment_method": "支付方式无效",
		"error.order_duplicate_checkout":     "刚刚已提交相同订单，请稍候",
		"error.order_item_invalid":           "订单包含无效商品",
		"error.order_create_failed":          "创建订单失败",
		"error.order_fetch_failed":           "查询订单失败",
		"error.order_update_failed":          "更新订单失败",

		"error.rate_limit_unavailable": "限流服务暂不可用",
	},
}
