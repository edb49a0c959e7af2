// Package http provides HTTP handlers for the identity token lifecycle and
// directory administration operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	"github.com/fs9io/identity/internal/identity/http/dto"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
	"github.com/fs9io/identity/internal/httputil"
	customValidation "github.com/fs9io/identity/internal/validation"
)

// NamespaceHandler handles HTTP requests for namespace administration.
type NamespaceHandler struct {
	namespaceUseCase identityUseCase.NamespaceUseCase
	logger           *slog.Logger
}

// NewNamespaceHandler creates a new namespace handler with required dependencies.
func NewNamespaceHandler(
	namespaceUseCase identityUseCase.NamespaceUseCase,
	logger *slog.Logger,
) *NamespaceHandler {
	return &NamespaceHandler{
		namespaceUseCase: namespaceUseCase,
		logger:           logger,
	}
}

// CreateHandler registers a new namespace.
// POST /v1/namespaces - Requires admin authentication.
// Returns 201 Created with the namespace data.
func (h *NamespaceHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateNamespaceRequest

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

	// Create input for use case
	input := &identityDomain.CreateNamespaceInput{
		Name:        req.Name,
		Description: req.Description,
	}

	// Call use case
	namespace, err := h.namespaceUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapNamespaceToResponse(namespace))
}

// GetHandler retrieves a namespace by name.
// GET /v1/namespaces/:name - Requires admin authentication.
// Returns 200 OK with the namespace data.
func (h *NamespaceHandler) GetHandler(c *gin.Context) {
	name := c.Param("name")

	// Call use case
	namespace, err := h.namespaceUseCase.Get(c.Request.Context(), name)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNamespaceToResponse(namespace))
}

// ListHandler retrieves namespaces ordered by creation time.
// GET /v1/namespaces?offset=0&limit=50 - Requires admin authentication.
// Returns 200 OK with the namespace list.
func (h *NamespaceHandler) ListHandler(c *gin.Context) {
	// Parse pagination parameters
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Call use case
	namespaces, err := h.namespaceUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapNamespacesToListResponse(namespaces))
}

// DeleteHandler removes a namespace and all its users as one atomic batch.
// DELETE /v1/namespaces/:name - Requires admin authentication.
// The "default" namespace is protected and returns 403 Forbidden.
// Returns 204 No Content.
func (h *NamespaceHandler) DeleteHandler(c *gin.Context) {
	name := c.Param("name")

	// Call use case
	if err := h.namespaceUseCase.Delete(c.Request.Context(), name); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
