package admin

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

var flowerAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrFlowerNotFound, code: response.CodeNotFound, key: "error.flower_not_found"},
	{target: service.ErrFlowerInvalidCategory, code: response.CodeBadRequest, key: "error.flower_invalid_category"},
	{target: service.ErrFlowerInvalidPrice, code: response.CodeBadRequest, key: "error.flower_invalid_price"},
}

var orderAdminErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidParams, code: response.CodeBadRequest, key: "error.invalid_params"},
	{target: service.ErrOrderNotFound, code: response.CodeNotFound, key: "error.order_not_found"},
	{target: service.ErrOrderStatusInvalid, code: response.CodeBadRequest, key: "error.order_invalid_status"},
	{target: service.ErrPaymentStatusInvalid, code: response.CodeBadRequest, key: "error.order_invalid_payment_status"},
}
