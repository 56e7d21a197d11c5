package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"clientdesk/internal/auth"
	errs "clientdesk/internal/errors"
	"clientdesk/internal/service"
)

// UserHandler handles the admin user-management surface and the
// self-service password change.
type UserHandler struct {
	svc service.UserService
	log zerolog.Logger
}

// NewUserHandler creates a user handler.
func NewUserHandler(svc service.UserService, log zerolog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

// CreateUserRequest carries the fields for a new account.
type CreateUserRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Email    string `form:"email" json:"email"`
	FullName string `form:"full_name" json:"full_name"`
	Role     string `form:"role" json:"role"`
}

// UpdateUserRequest carries the admin-editable account fields.
type UpdateUserRequest struct {
	Email    string `form:"email" json:"email"`
	FullName string `form:"full_name" json:"full_name"`
	Role     string `form:"role" json:"role"`
	IsActive bool   `form:"is_active" json:"is_active"`
}

// ChangePasswordRequest carries the self-service password change fields.
type ChangePasswordRequest struct {
	CurrentPassword string `form:"current_password" json:"current_password" validate:"required"`
	NewPassword     string `form:"new_password" json:"new_password" validate:"required"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" validate:"required"`
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Failure 403 {object} errors.ErrorResponse
// @Router /api/users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err, "list users failed")
	}
	return c.JSON(http.StatusOK, users)
}

// Create godoc
// @Summary Add a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body CreateUserRequest true "User fields"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	_, err := h.svc.Create(c.Request().Context(), service.UserInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		return respondError(c, h.log, err, "add user failed")
	}
	return respondMessage(c, "user added successfully")
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body UpdateUserRequest true "User fields"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid user id"})
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	err = h.svc.Update(c.Request().Context(), id, service.UserUpdate{
		Email:    req.Email,
		FullName: req.FullName,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		return respondError(c, h.log, err, "update user failed")
	}
	return respondMessage(c, "user updated successfully")
}

// Delete godoc
// @Summary Delete a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid user id"})
	}
	sess := auth.CurrentSession(c)
	if sess == nil {
		return c.JSON(http.StatusForbidden, errs.ErrorResponse{Error: "unauthorized"})
	}
	if err := h.svc.Delete(c.Request().Context(), sess.UserID, id); err != nil {
		return respondError(c, h.log, err, "delete user failed")
	}
	return respondMessage(c, "user deleted successfully")
}

// ChangePassword godoc
// @Summary Change the current user's password
// @Tags users
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Password change fields"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /api/profile/password [post]
func (h *UserHandler) ChangePassword(c echo.Context) error {
	sess := auth.CurrentSession(c)
	if sess == nil {
		return c.JSON(http.StatusForbidden, errs.ErrorResponse{Error: "unauthorized"})
	}
	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errs.ErrorResponse{Error: "invalid request body"})
	}
	err := h.svc.ChangePassword(c.Request().Context(), sess.UserID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return respondError(c, h.log, err, "change password failed")
	}
	return respondMessage(c, "password updated successfully")
}
