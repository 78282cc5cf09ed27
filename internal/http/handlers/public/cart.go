package public

import (
	"strconv"

	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	FlowerID uint `json:"flower_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest 更新购物车数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, gin.H{
		"items": items,
		"count": len(items),
	})
}

// AddCartItem 添加商品到购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	if err := h.CartService.AddItem(service.AddCartItemInput{
		UserID:   uid,
		FlowerID: req.FlowerID,
		Quantity: req.Quantity,
	}); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// UpdateCartItem 更新购物车项数量
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	flowerID, err := strconv.ParseUint(c.Param("flower_id"), 10, 64)
	if err != nil || flowerID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	if err := h.CartService.UpdateItemQuantity(uid, uint(flowerID), req.Quantity); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// RemoveCartItem 移除购物车项
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	flowerID, err := strconv.ParseUint(c.Param("flower_id"), 10, 64)
	if err != nil || flowerID == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	if err := h.CartService.RemoveItem(uid, uint(flowerID)); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}

// GetCartCount 购物车商品总数（优先命中缓存）
func (h *Handler) GetCartCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.CartService.Count(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.CartService.Clear(uid); err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, nil)
}
