package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zWyrm/rewear-teamtan/internal/auth"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/service"
)

// SwapHandler handles swap request endpoints.
type SwapHandler struct {
	swapService service.SwapService
}

// NewSwapHandler creates a new swap handler.
func NewSwapHandler(swapService service.SwapService) *SwapHandler {
	return &SwapHandler{swapService: swapService}
}

// CreateSwapRequest represents a new swap proposal. RequesterItemID is nil
// for a points-only offer.
type CreateSwapRequest struct {
	RequesterItemID  *uint  `json:"requester_item_id"`
	OwnerItemID      uint   `json:"owner_item_id" validate:"required"`
	PointsDifference int    `json:"points_difference"`
	Message          string `json:"message"`
}

// UpdateSwapRequest carries the owner's decision.
type UpdateSwapRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted declined"`
}

// Create godoc
// @Summary Propose a swap for another user's item
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSwapRequest true "Swap proposal"
// @Success 201 {object} model.Swap
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /swaps [post]
func (h *SwapHandler) Create(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateSwapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	swap, err := h.swapService.CreateSwap(c.Request().Context(), claims.UserID, service.CreateSwapInput{
		RequesterItemID:  req.RequesterItemID,
		OwnerItemID:      req.OwnerItemID,
		PointsDifference: req.PointsDifference,
		Message:          req.Message,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, swap)
}

// Mine godoc
// @Summary List swaps the caller sent and received
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.MySwaps
// @Router /my-swaps [get]
func (h *SwapHandler) Mine(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	swaps, err := h.swapService.ListMySwaps(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, swaps)
}

// UpdateStatus godoc
// @Summary Accept or decline a pending swap
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap ID"
// @Param request body UpdateSwapRequest true "Decision"
// @Success 200 {object} service.SwapDecision
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /swaps/{id} [patch]
func (h *SwapHandler) UpdateStatus(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateSwapRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	decision, err := h.swapService.UpdateStatus(c.Request().Context(), claims.UserID, id, model.SwapStatus(req.Status))
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, decision)
}
