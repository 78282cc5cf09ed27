package admin

import (
	"strconv"

	handlershared "github.com/bloomery-shop/internal/http/handlers/shared"
	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/repository"

	"github.com/gin-gonic/gin"
)

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePaymentStatusRequest 更新支付状态请求
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ListOrders 全量订单列表（支持状态/支付状态/用户过滤）
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
	}
	if userID, err := strconv.ParseUint(c.Query("user_id"), 10, 64); err == nil && userID > 0 {
		filter.UserID = uint(userID)
	}

	orders, total, err := h.OrderService.AdminList(filter)
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

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.AdminGetByID(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, order)
}

// ListOrderItems 订单明细行
func (h *Handler) ListOrderItems(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	items, err := h.OrderService.AdminListItems(id)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, items)
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}

// UpdateOrderPaymentStatus 更新支付状态
func (h *Handler) UpdateOrderPaymentStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	order, err := h.OrderService.UpdatePaymentStatus(id, req.PaymentStatus)
	if err != nil {
		respondWithMappedError(c, err, orderAdminErrorRules, response.CodeInternal, "error.order_update_failed")
		return
	}
	response.Success(c, order)
}
