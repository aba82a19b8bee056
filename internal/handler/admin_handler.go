package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zWyrm/rewear-teamtan/internal/service"
)

// AdminHandler handles moderation endpoints. All routes require the admin role.
type AdminHandler struct {
	moderationService service.ModerationService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(moderationService service.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

// SuspendRequest represents a suspension duration. At least one component
// must be positive.
type SuspendRequest struct {
	Months int `json:"months" validate:"min=0"`
	Days   int `json:"days" validate:"min=0"`
	Hours  int `json:"hours" validate:"min=0"`
}

// StatusResponse is a minimal acknowledgement body.
type StatusResponse struct {
	Status string `json:"status"`
}

// PendingItems godoc
// @Summary List items awaiting moderation
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Item
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/pending-items [get]
func (h *AdminHandler) PendingItems(c echo.Context) error {
	items, err := h.moderationService.PendingItems(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// ApproveItem godoc
// @Summary Approve a pending item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/items/{id}/approve [patch]
func (h *AdminHandler) ApproveItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.moderationService.ApproveItem(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "approved"})
}

// RejectItem godoc
// @Summary Reject and remove an item
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/items/{id} [delete]
func (h *AdminHandler) RejectItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.moderationService.RejectItem(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "rejected"})
}

// ListUsers godoc
// @Summary List all users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.moderationService.ListUsers(c.Request().Context())
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, users)
}

// SuspendUser godoc
// @Summary Suspend a user for a duration
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body SuspendRequest true "Suspension duration"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/suspend [post]
func (h *AdminHandler) SuspendUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req SuspendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Months == 0 && req.Days == 0 && req.Hours == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "suspension duration must be positive")
	}

	err = h.moderationService.SuspendUser(c.Request().Context(), id, service.SuspendInput{
		Months: req.Months,
		Days:   req.Days,
		Hours:  req.Hours,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "suspended"})
}

// CancelSuspension godoc
// @Summary Lift a user's suspension
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/cancel-suspension [post]
func (h *AdminHandler) CancelSuspension(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.moderationService.CancelSuspension(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "suspension lifted"})
}

// BanUser godoc
// @Summary Permanently ban a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} StatusResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id}/ban [post]
func (h *AdminHandler) BanUser(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.moderationService.BanUser(c.Request().Context(), id); err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: "banned"})
}
