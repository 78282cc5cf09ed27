package public

import (
	"errors"
	"strconv"

	handlershared "github.com/bloomery-shop/internal/http/handlers/shared"
	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// ListFlowers 花卉列表（仅展示上架商品）
func (h *Handler) ListFlowers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	input := service.FlowerListInput{
		Page:       page,
		PageSize:   pageSize,
		Category:   c.Query("category"),
		Search:     c.Query("search"),
		OnlyActive: true,
		InStock:    c.Query("in_stock") == "true",
	}

	flowers, total, err := h.FlowerService.List(input)
	if err != nil {
		if errors.Is(err, service.ErrFlowerInvalidCategory) {
			respondError(c, response.CodeBadRequest, "error.flower_invalid_category", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}

	response.SuccessWithPage(c, flowers, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: handlershared.BuildTotalPage(total, pageSize),
	})
}

// ListFeaturedFlowers 精选花卉（首页推荐位）
func (h *Handler) ListFeaturedFlowers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	flowers, err := h.FlowerService.ListFeatured(limit)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, flowers)
}

// GetFlower 花卉详情
func (h *Handler) GetFlower(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	flower, err := h.FlowerService.GetActiveByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrFlowerNotFound) || errors.Is(err, service.ErrFlowerNotAvailable) {
			respondError(c, response.CodeNotFound, "error.flower_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, flower)
}
