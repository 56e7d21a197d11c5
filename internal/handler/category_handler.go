package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	errs "clientdesk/internal/errors"
	"clientdesk/internal/service"
)

// CategoryHandler handles the category aggregate surface. Categories are
// labels on clients, so mutations go through the client service.
type CategoryHandler struct {
	svc service.ClientService
	log zerolog.Logger
}

// NewCategoryHandler creates a category handler.
func NewCategoryHandler(svc service.ClientService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

// AddCategoryRequest names a new category.
type AddCategoryRequest struct {
	CategoryName string `form:"category_name" json:"category_name" validate:"required"`
}

// Stats godoc
// @Summary Per-category client counts
// @Tags categories
// @Produce json
// @Success 200 {array} model.CategoryStat
// @Router /api/categories [get]
func (h *CategoryHandler) Stats(c echo.Context) error {
	stats, err := h.svc.CategoryStats(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "category stats failed")
	}
	return c.JSON(http.StatusOK, stats)
}

// Add godoc
// @Summary Add a category
// @Tags categories
// @Accept json
// @Produce json
// @Param request body AddCategoryRequest true "Category name"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) Add(c echo.Context) error {
	var req AddCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	if err := h.svc.AddCategory(c.Request().Context(), req.CategoryName); err != nil {
		return respondError(c, h.log, err, "add category failed")
	}
	return respondMessage(c, "category added successfully")
}

// Delete godoc
// @Summary Delete a category and every client in it
// @Tags categories
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/categories/{name} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	name := c.Param("name")
	deleted, err := h.svc.DeleteCategory(c.Request().Context(), name)
	if err != nil {
		return respondError(c, h.log, err, "delete category failed")
	}
	return respondMessage(c, fmt.Sprintf("category deleted successfully (%d clients removed)", deleted))
}
