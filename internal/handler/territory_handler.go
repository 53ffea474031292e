package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/service"
	"github.com/landrun/territory-backend-go/pkg/response"
)

// TerritoryHandler handles HTTP requests for territories
type TerritoryHandler struct {
	service *service.TerritoryService
}

// NewTerritoryHandler creates a new territory handler
func NewTerritoryHandler(service *service.TerritoryService) *TerritoryHandler {
	return &TerritoryHandler{service: service}
}

// List handles GET /api/v1/territories
func (h *TerritoryHandler) List(c *gin.Context) {
	var filter models.TerritoryFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters", err)
		return
	}

	territories, total, err := h.service.List(filter)
	if err != nil {
		response.InternalError(c, "Failed to list territories", err)
		return
	}

	response.Success(c, gin.H{
		"data":  territories,
		"total": total,
	})
}

// Get handles GET /api/v1/territories/:id
func (h *TerritoryHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "Invalid territory id", err)
		return
	}

	territory, err := h.service.Get(id, c.Query("frame"))
	if err != nil {
		response.InternalError(c, "Failed to get territory", err)
		return
	}
	if territory == nil {
		response.NotFound(c, "Territory not found")
		return
	}

	response.Success(c, territory)
}
