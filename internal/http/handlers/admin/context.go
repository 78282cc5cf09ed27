package admin

import (
	"strconv"

	"github.com/bloomery-shop/internal/http/response"

	"github.com/gin-gonic/gin"
)

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.invalid_params", nil)
		return 0, false
	}
	return uint(id), true
}
