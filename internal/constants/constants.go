package constants

// 订单状态常量
const (
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// 支付状态常量
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// 支付方式常量
const (
	PaymentMethodQRCode         = "qr_code"
	PaymentMethodCreditCard     = "credit_card"
	PaymentMethodCashOnDelivery = "cash_on_delivery"
)

// 鲜花分类常量
const (
	FlowerCategoryRoses      = "roses"
	FlowerCategorySunflowers = "sunflowers"
	FlowerCategoryLilies     = "lilies"
	FlowerCategoryTulips     = "tulips"
	FlowerCategoryOrchids    = "orchids"
	FlowerCategoryMixed      = "mixed"
)

// 用户角色常量
const (
	UserRoleCustomer = "customer"
	UserRoleAdmin    = "admin"
)

// 队列与任务常量
const (
	QueueDefault = "default"

	TaskOrderStatusEmail = "order:status_email"
)

// OrderStatuses 订单状态全集
var OrderStatuses = []string{
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// PaymentStatuses 支付状态全集
var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusCompleted,
	PaymentStatusFailed,
}

// PaymentMethods 支付方式全集
var PaymentMethods = []string{
	PaymentMethodQRCode,
	PaymentMethodCreditCard,
	PaymentMethodCashOnDelivery,
}

// FlowerCategories 鲜花分类全集
var FlowerCategories = []string{
	FlowerCategoryRoses,
	FlowerCategorySunflowers,
	FlowerCategoryLilies,
	FlowerCategoryTulips,
	FlowerCategoryOrchids,
	FlowerCategoryMixed,
}

// IsValidOrderStatus 判断订单状态是否合法
func IsValidOrderStatus(status string) bool {
	return containsString(OrderStatuses, status)
}

// IsValidPaymentStatus 判断支付状态是否合法
func IsValidPaymentStatus(status string) bool {
	return containsString(PaymentStatuses, status)
}

// IsValidPaymentMethod 判断支付方式是否合法
func IsValidPaymentMethod(method string) bool {
	return containsString(PaymentMethods, method)
}

// IsValidFlowerCategory 判断鲜花分类是否合法
func IsValidFlowerCategory(category string) bool {
	return containsString(FlowerCategories, category)
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
