// Package http provides HTTP handlers for the identity token lifecycle and
// directory administration operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	"github.com/fs9io/identity/internal/identity/http/dto"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
	"github.com/fs9io/identity/internal/httputil"
	customValidation "github.com/fs9io/identity/internal/validation"
)

// UserHandler handles HTTP requests for directory user administration.
type UserHandler struct {
	userUseCase identityUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(
	userUseCase identityUseCase.UserUseCase,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// CreateHandler registers a new user in an existing namespace.
// POST /v1/users - Requires admin authentication.
// Returns 201 Created with the user data.
func (h *UserHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateUserRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Parse roles into the validated vocabulary
	roles, err := identityDomain.ParseRoles(req.Roles)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Create input for use case
	input := &identityDomain.CreateUserInput{
		Username:  req.Username,
		Namespace: req.Namespace,
		Roles:     roles,
		IsActive:  req.IsActive,
	}

	// Call use case
	user, err := h.userUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapUserToResponse(user))
}

// GetHandler retrieves a user by ID.
// GET /v1/users/:id - Requires admin authentication.
// Returns 200 OK with the user data.
func (h *UserHandler) GetHandler(c *gin.Context) {
	// Parse and validate UUID
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	// Call use case
	user, err := h.userUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// GetByUsernameHandler retrieves a user by its unique username.
// GET /v1/users/by-name/:username - Requires admin authentication.
// Returns 200 OK with the user data.
func (h *UserHandler) GetByUsernameHandler(c *gin.Context) {
	username := c.Param("username")

	// Call use case
	user, err := h.userUseCase.GetByUsername(c.Request.Context(), username)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// ListHandler retrieves users ordered by creation time.
// GET /v1/users?offset=0&limit=50 - Requires admin authentication.
// Returns 200 OK with the user list.
func (h *UserHandler) ListHandler(c *gin.Context) {
	// Parse pagination parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	users, err := h.userUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUsersToListResponse(users))
}

// UpdateHandler modifies a user's role set and active flag.
// PUT /v1/users/:id - Requires admin authentication.
// Deactivating a user makes every outstanding token for that user fail
// validation on the liveness check.
// Returns 200 OK with the updated user data.
func (h *UserHandler) UpdateHandler(c *gin.Context) {
	// Parse and validate UUID
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	var req dto.UpdateUserRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	// Parse roles into the validated vocabulary
	roles, err := identityDomain.ParseRoles(req.Roles)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Create input for use case
	input := &identityDomain.UpdateUserInput{
		Roles:    roles,
		IsActive: req.IsActive,
	}

	// Call use case
	user, err := h.userUseCase.Update(c.Request.Context(), userID, input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapUserToResponse(user))
}

// DeleteHandler removes a user from the directory.
// DELETE /v1/users/:id - Requires admin authentication.
// Returns 204 No Content.
func (h *UserHandler) DeleteHandler(c *gin.Context) {
	// Parse and validate UUID
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user ID format: must be a valid UUID"),
			h.logger)
		return
	}

	// Call use case
	if err := h.userUseCase.Delete(c.Request.Context(), userID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
