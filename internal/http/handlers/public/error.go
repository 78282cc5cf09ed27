package public

import (
	"errors"

	handlershared "github.com/bloomery-shop/internal/http/handlers/shared"
	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrCartEmpty, code: response.CodeBadRequest, key: "error.cart_empty"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, key: "error.address_not_found"},
	{target: service.ErrPaymentMethodInvalid, code: response.CodeBadRequest, key: "error.order_invalid_payment_method"},
	{target: service.ErrInvalidOrderItem, code: response.CodeBadRequest, key: "error.order_item_invalid"},
	{target: service.ErrFlowerNotAvailable, code: response.CodeBadRequest, key: "error.flower_inactive"},
	{target: service.ErrFlowerOutOfStock, code: response.CodeBadRequest, key: "error.flower_out_of_stock"},
	{target: service.ErrDuplicateCheckout, code: response.CodeConflict, key: "error.order_duplicate_checkout"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrInvalidQuantity, code: response.CodeBadRequest, key: "error.cart_quantity_invalid"},
	{target: service.ErrFlowerNotAvailable, code: response.CodeBadRequest, key: "error.flower_inactive"},
	{target: service.ErrCartItemNotFound, code: response.CodeNotFound, key: "error.cart_item_not_found"},
}

var addressErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrAddressNotFound, code: response.CodeNotFound, key: "error.address_not_found"},
}
