package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	errs "clientdesk/internal/errors"
	"clientdesk/internal/service"
)

// ClientHandler handles client CRUD, bulk operations and CSV import.
type ClientHandler struct {
	svc service.ClientService
	log zerolog.Logger
}

// NewClientHandler creates a client handler.
func NewClientHandler(svc service.ClientService, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{svc: svc, log: log}
}

// ClientRequest carries the editable client fields.
type ClientRequest struct {
	Name     string `form:"name" json:"name" validate:"required"`
	Category string `form:"category" json:"category" validate:"required"`
	Email    string `form:"email" json:"email"`
	Phone    string `form:"phone" json:"phone"`
	Address  string `form:"address" json:"address"`
	Notes    string `form:"notes" json:"notes"`
}

func (r *ClientRequest) input() service.ClientInput {
	return service.ClientInput{
		Name:     r.Name,
		Category: r.Category,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Notes:    r.Notes,
	}
}

// BulkDeleteRequest selects clients for bulk deletion.
type BulkDeleteRequest struct {
	ClientIDs []uint `json:"client_ids" validate:"required,min=1"`
}

// BulkCategoryRequest moves clients to a new category.
type BulkCategoryRequest struct {
	ClientIDs []uint `json:"client_ids" validate:"required,min=1"`
	Category  string `json:"category" validate:"required"`
}

// List godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Success 200 {array} model.Client
// @Router /api/clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	clients, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "list clients failed")
	}
	return c.JSON(http.StatusOK, clients)
}

// Get godoc
// @Summary Get client details
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} model.Client
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid client id"})
	}
	client, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err, "get client failed")
	}
	return c.JSON(http.StatusOK, client)
}

// Create godoc
// @Summary Add a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body ClientRequest true "Client fields"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	if _, err := h.svc.Create(c.Request().Context(), req.input()); err != nil {
		return respondError(c, h.log, err, "add client failed")
	}
	return respondMessage(c, "client added successfully")
}

// Update godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param client body ClientRequest true "Client fields"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid client id"})
	}
	var req ClientRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	if err := h.svc.Update(c.Request().Context(), id, req.input()); err != nil {
		return respondError(c, h.log, err, "update client failed")
	}
	return respondMessage(c, "client updated successfully")
}

// Delete godoc
// @Summary Delete a client
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid client id"})
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err, "delete client failed")
	}
	return respondMessage(c, "client deleted successfully")
}

// BulkDelete godoc
// @Summary Delete a set of clients
// @Tags clients
// @Accept json
// @Produce json
// @Param request body BulkDeleteRequest true "Client id set"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/clients/bulk-delete [post]
func (h *ClientHandler) BulkDelete(c echo.Context) error {
	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	deleted, err := h.svc.BulkDelete(c.Request().Context(), req.ClientIDs)
	if err != nil {
		return respondError(c, h.log, err, "bulk delete failed")
	}
	return respondMessage(c, fmt.Sprintf("successfully deleted %d clients", deleted))
}

// BulkUpdateCategory godoc
// @Summary Move a set of clients to a category
// @Tags clients
// @Accept json
// @Produce json
// @Param request body BulkCategoryRequest true "Client id set and target category"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/clients/bulk-category [post]
func (h *ClientHandler) BulkUpdateCategory(c echo.Context) error {
	var req BulkCategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	updated, err := h.svc.BulkUpdateCategory(c.Request().Context(), req.ClientIDs, req.Category)
	if err != nil {
		return respondError(c, h.log, err, "bulk category update failed")
	}
	return respondMessage(c, fmt.Sprintf("successfully updated category for %d clients", updated))
}

// Import godoc
// @Summary Import clients from a CSV upload
// @Tags clients
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file (name,category,email,phone,address,notes)"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/clients/import [post]
func (h *ClientHandler) Import(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "no file uploaded"})
	}
	if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "please upload a CSV file"})
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, h.log, err, "open upload failed")
	}
	defer src.Close()

	imported, err := h.svc.ImportCSV(c.Request().Context(), src)
	if err != nil {
		return respondError(c, h.log, err, "import clients failed")
	}
	return respondMessage(c, fmt.Sprintf("successfully imported %d clients", imported))
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
