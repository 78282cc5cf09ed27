package public

import (
	"strconv"

	"github.com/bloomery-shop/internal/http/response"
	"github.com/bloomery-shop/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest 收货地址创建/更新请求
type AddressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	Commune    string `json:"commune"`
	Province   string `json:"province"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Label      string `json:"label"`
	IsDefault  bool   `json:"is_default"`
}

func (r AddressRequest) toInput() service.AddressInput {
	return service.AddressInput{
		Street:     r.Street,
		City:       r.City,
		Commune:    r.Commune,
		Province:   r.Province,
		PostalCode: r.PostalCode,
		Country:    r.Country,
		Label:      r.Label,
		IsDefault:  r.IsDefault,
	}
}

// ListAddresses 获取用户地址列表
func (h *Handler) ListAddresses(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	addresses, err := h.AddressService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, addresses)
}

// ListAddressLabels 获取用户地址标签列表
func (h *Handler) ListAddressLabels(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	labels, err := h.AddressService.ListLabels(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, labels)
}

// GetAddress 地址详情
func (h *Handler) GetAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	address, err := h.AddressService.GetByID(uint(id), uid)
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, address)
}

// CreateAddress 新建地址
func (h *Handler) CreateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	address, err := h.AddressService.Create(uid, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, address)
}

// UpdateAddress 更新地址
func (h *Handler) UpdateAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	var req AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	address, err := h.AddressService.Update(uint(id), uid, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, address)
}

// DeleteAddress 删除地址
func (h *Handler) DeleteAddress(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return
	}

	if err := h.AddressService.Delete(uint(id), uid); err != nil {
		respondWithMappedError(c, err, addressErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, nil)
}
