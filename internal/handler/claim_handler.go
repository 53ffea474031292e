package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/landrun/territory-backend-go/internal/middleware"
	"github.com/landrun/territory-backend-go/internal/models"
	"github.com/landrun/territory-backend-go/internal/service"
	"github.com/landrun/territory-backend-go/pkg/response"
)

// ClaimHandler handles HTTP requests for claim sessions
type ClaimHandler struct {
	service *service.ClaimService
}

// NewClaimHandler creates a new claim handler
func NewClaimHandler(service *service.ClaimService) *ClaimHandler {
	return &ClaimHandler{service: service}
}

// Start handles POST /api/v1/claims/start
func (h *ClaimHandler) Start(c *gin.Context) {
	var req models.FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid fix payload", err)
		return
	}

	status, err := h.service.StartClaim(c.GetString(middleware.UserIDKey), req.ToTimedFix())
	if err != nil {
		var collErr *service.CollisionError
		if errors.As(err, &collErr) {
			response.Conflict(c, collErr.Result.Message, collErr.Result)
			return
		}
		response.Error(c, http.StatusConflict, "Failed to start claim", err)
		return
	}

	response.Success(c, status)
}

// Fix handles POST /api/v1/claims/fix
func (h *ClaimHandler) Fix(c *gin.Context) {
	var req models.FixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid fix payload", err)
		return
	}

	status, err := h.service.SubmitFix(c.GetString(middleware.UserIDKey), req.ToTimedFix())
	if err != nil {
		response.Error(c, http.StatusConflict, "Failed to record fix", err)
		return
	}

	response.Success(c, status)
}

// Tick handles POST /api/v1/claims/tick, the caller's coarse collision timer
func (h *ClaimHandler) Tick(c *gin.Context) {
	status, err := h.service.Tick(c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Error(c, http.StatusConflict, "Failed to run collision check", err)
		return
	}

	response.Success(c, status)
}

// Cancel handles POST /api/v1/claims/cancel
func (h *ClaimHandler) Cancel(c *gin.Context) {
	h.service.Cancel(c.GetString(middleware.UserIDKey))
	response.Success(c, gin.H{"state": models.SessionIdle})
}

// Status handles GET /api/v1/claims/status
func (h *ClaimHandler) Status(c *gin.Context) {
	response.Success(c, h.service.Status(c.GetString(middleware.UserIDKey)))
}
