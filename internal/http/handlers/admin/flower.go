package admin

import (
	"errors"
	"strconv"

	handlershared "github.com/bloomery-shop/internal/http/handlers/shared"
	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/models"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// FlowerUpsertRequest 花卉创建/更新请求
type FlowerUpsertRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	Category    string       `json:"category"`
	Stock       int          `json:"stock"`
	ImageURL    string       `json:"image_url"`
	IsActive    *bool        `json:"is_active"`
	IsFeatured  *bool        `json:"is_featured"`
}

// UpdateStockRequest 调整库存请求
type UpdateStockRequest struct {
	Stock int `json:"stock" binding:"min=0"`
}

func (r FlowerUpsertRequest) toInput() service.FlowerUpsertInput {
	return service.FlowerUpsertInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		Stock:       r.Stock,
		ImageURL:    r.ImageURL,
		IsActive:    r.IsActive,
		IsFeatured:  r.IsFeatured,
	}
}

// ListFlowers 花卉列表（含已下架商品）
func (h *Handler) ListFlowers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	flowers, total, err := h.FlowerService.List(service.FlowerListInput{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondWithMappedError(c, err, flowerAdminErrorRules, response.CodeInternal, "error.internal_error")
		return
	}

	response.SuccessWithPage(c, flowers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.BuildTotalPage(total, pageSize),
	})
}

// GetFlower 花卉详情
func (h *Handler) GetFlower(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	flower, err := h.FlowerService.GetByID(id)
	if err != nil {
		respondWithMappedError(c, err, flowerAdminErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, flower)
}

// CreateFlower 新建花卉
func (h *Handler) CreateFlower(c *gin.Context) {
	var req FlowerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	flower, err := h.FlowerService.Create(req.toInput())
	if err != nil {
		respondWithMappedError(c, err, flowerAdminErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, flower)
}

// UpdateFlower 更新花卉
func (h *Handler) UpdateFlower(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FlowerUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	flower, err := h.FlowerService.Update(id, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, flowerAdminErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, flower)
}

// UpdateFlowerStock 调整库存
func (h *Handler) UpdateFlowerStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	flower, err := h.FlowerService.UpdateStock(id, req.Stock)
	if err != nil {
		respondWithMappedError(c, err, flowerAdminErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, flower)
}

// DeleteFlower 下架并删除花卉
func (h *Handler) DeleteFlower(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.FlowerService.Delete(id); err != nil {
		if errors.Is(err, service.ErrFlowerNotFound) {
			respondError(c, response.CodeNotFound, "error.flower_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, nil)
}
