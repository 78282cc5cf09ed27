package public

import (
	"errors"
	"strconv"

	handlershared "github.com/bloomery-shop/internal/http/handlers/shared"
	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算下单请求。total_price 为客户端展示价，
// 仅用于对账，金额始终以服务端重新计算为准。
type CheckoutRequest struct {
	AddressID     uint          `json:"address_id" binding:"required"`
	PaymentMethod string        `json:"payment_method"`
	Notes         string        `json:"notes"`
	TotalPrice    *models.Money `json:"total_price"`
}

// Checkout 购物车结算下单
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:        uid,
		AddressID:     req.AddressID,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		ClientTotal:   req.TotalPrice,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.Success(c, order)
}

// ListOrders 当前用户订单列表（不含已取消订单）
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(uid, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.BuildTotalPage(total, pageSize),
	})
}

// ListRecentOrders 最近订单
func (h *Handler) ListRecentOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	orders, err := h.OrderService.RecentByUser(uid, limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 订单详情（仅限本人订单）
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	order, err := h.OrderService.GetByIDAndUser(uint(id), uid)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			respondError(c, response.CodeNotFound, "error.order_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.order_fetch_failed", err)
		return
	}
	response.Success(c, order)
}
