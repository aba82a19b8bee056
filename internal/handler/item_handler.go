package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/zWyrm/rewear-teamtan/internal/auth"
	"github.com/zWyrm/rewear-teamtan/internal/model"
	"github.com/zWyrm/rewear-teamtan/internal/repository"
	"github.com/zWyrm/rewear-teamtan/internal/service"
)

// ItemHandler handles catalog endpoints.
type ItemHandler struct {
	itemService service.ItemService
}

// NewItemHandler creates a new item handler.
func NewItemHandler(itemService service.ItemService) *ItemHandler {
	return &ItemHandler{itemService: itemService}
}

// CreateItemRequest represents a new listing.
type CreateItemRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof=tops dresses bottoms outerwear shoes accessories"`
	Condition   string   `json:"condition" validate:"required,oneof=excellent good fair poor"`
	Size        string   `json:"size" validate:"required"`
	Value       int      `json:"value" validate:"required,gt=0"`
	ImageURLs   []string `json:"image_urls"`
	Tags        []string `json:"tags"`
}

// UpdateItemRequest represents a partial listing update.
type UpdateItemRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" validate:"omitempty,oneof=tops dresses bottoms outerwear shoes accessories"`
	Condition   *string   `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	Size        *string   `json:"size"`
	Value       *int      `json:"value" validate:"omitempty,gt=0"`
	ImageURLs   *[]string `json:"image_urls"`
	Tags        *[]string `json:"tags"`
	IsAvailable *bool     `json:"is_available"`
}

func pathID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return uint(id), nil
}

// List godoc
// @Summary Browse approved, available items
// @Tags items
// @Produce json
// @Param category query string false "Filter by category"
// @Param userId query int false "Filter by owner"
// @Param approved query bool false "Filter by approval state"
// @Param search query string false "Substring match on title and description"
// @Success 200 {array} model.Item
// @Router /items [get]
func (h *ItemHandler) List(c echo.Context) error {
	filter := repository.ItemFilter{Search: c.QueryParam("search")}

	if raw := c.QueryParam("category"); raw != "" {
		category := model.ItemCategory(raw)
		filter.Category = &category
	}
	if raw := c.QueryParam("userId"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid userId")
		}
		ownerID := uint(parsed)
		filter.OwnerID = &ownerID
	}
	if raw := c.QueryParam("approved"); raw != "" {
		approved, err := strconv.ParseBool(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid approved")
		}
		filter.IsApproved = &approved
	}

	items, err := h.itemService.ListItems(c.Request().Context(), filter)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get a single item with owner details
// @Tags items
// @Produce json
// @Param id path int true "Item ID"
// @Success 200 {object} service.ItemDetail
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [get]
func (h *ItemHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	detail, err := h.itemService.GetItem(c.Request().Context(), id)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, detail)
}

// Mine godoc
// @Summary List the caller's own items
// @Tags items
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Item
// @Router /my-items [get]
func (h *ItemHandler) Mine(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	items, err := h.itemService.MyItems(c.Request().Context(), claims.UserID)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, items)
}

// Create godoc
// @Summary Create a new listing
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateItemRequest true "Listing data"
// @Success 201 {object} model.Item
// @Failure 400 {object} errors.ErrorResponse
// @Router /items [post]
func (h *ItemHandler) Create(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.itemService.CreateItem(c.Request().Context(), claims.UserID, service.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    model.ItemCategory(req.Category),
		Condition:   model.ItemCondition(req.Condition),
		Size:        req.Size,
		Value:       req.Value,
		ImageURLs:   req.ImageURLs,
		Tags:        req.Tags,
	})
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusCreated, item)
}

// Update godoc
// @Summary Update a listing
// @Tags items
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body UpdateItemRequest true "Fields to change"
// @Success 200 {object} model.Item
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /items/{id} [patch]
func (h *ItemHandler) Update(c echo.Context) error {
	claims, err := auth.CurrentUser(c)
	if err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req UpdateItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Size:        req.Size,
		Value:       req.Value,
		ImageURLs:   req.ImageURLs,
		Tags:        req.Tags,
		IsAvailable: req.IsAvailable,
	}
	if req.Category != nil {
		category := model.ItemCategory(*req.Category)
		in.Category = &category
	}
	if req.Condition != nil {
		condition := model.ItemCondition(*req.Condition)
		in.Condition = &condition
	}

	item, err := h.itemService.UpdateItem(c.Request().Context(), claims.UserID, claims.Role, id, in)
	if err != nil {
		return respondError(err)
	}
	return c.JSON(http.StatusOK, item)
}
