// Package http provides HTTP handlers for the identity token lifecycle and
// directory administration operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
	"github.com/fs9io/identity/internal/identity/http/dto"
	identityUseCase "github.com/fs9io/identity/internal/identity/usecase"
	"github.com/fs9io/identity/internal/httputil"
	customValidation "github.com/fs9io/identity/internal/validation"
)

// TokenHandler handles HTTP requests for token lifecycle operations.
// It coordinates issuance, validation, refresh, and revocation with the TokenUseCase.
type TokenHandler struct {
	tokenUseCase identityUseCase.TokenUseCase
	logger       *slog.Logger
}

// NewTokenHandler creates a new token handler with required dependencies.
func NewTokenHandler(
	tokenUseCase identityUseCase.TokenUseCase,
	logger *slog.Logger,
) *TokenHandler {
	return &TokenHandler{
		tokenUseCase: tokenUseCase,
		logger:       logger,
	}
}

// ttlFromSeconds converts an optional TTL in seconds to a duration.
func ttlFromSeconds(seconds *int64) *time.Duration {
	if seconds == nil {
		return nil
	}
	ttl := time.Duration(*seconds) * time.Second
	return &ttl
}

// IssueHandler issues a new signed token for a directory user.
// POST /v1/tokens - Requires admin authentication.
// Returns 201 Created with the token and its expiration time.
func (h *TokenHandler) IssueHandler(c *gin.Context) {
	var req dto.IssueTokenRequest

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

	// Parse user ID as UUID
	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		httputil.HandleValidationErrorGin(c,
			fmt.Errorf("invalid user_id format: must be a valid UUID"),
			h.logger)
		return
	}

	// Create input for use case
	input := &identityDomain.IssueTokenInput{
		UserID: userID,
		TTL:    ttlFromSeconds(req.TTLSeconds),
	}

	// Call use case
	output, err := h.tokenUseCase.Issue(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// ValidateHandler checks a token and answers with a structured verdict.
// POST /v1/tokens/validate - No authentication required (boundary check endpoint).
// Always returns 200 OK with a verdict; invalid tokens are a valid=false
// verdict, not an error status. Non-200 is reserved for malformed requests
// and infrastructure failures.
func (h *TokenHandler) ValidateHandler(c *gin.Context) {
	var req dto.ValidateTokenRequest

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

	// Call use case
	verdict, err := h.tokenUseCase.Validate(c.Request.Context(), req.Token)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerdictToResponse(verdict))
}

// RefreshHandler exchanges a token for a brand-new one with a fresh identifier.
// POST /v1/tokens/refresh - No admin authentication required (the token itself
// is the credential). Tolerates expired tokens within the refresh grace period.
// Returns 201 Created with the replacement token.
func (h *TokenHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshTokenRequest

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
	input := &identityDomain.RefreshTokenInput{
		Token: req.Token,
		TTL:   ttlFromSeconds(req.TTLSeconds),
	}

	// Call use case
	output, err := h.tokenUseCase.Refresh(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapIssueOutputToResponse(output))
}

// RevokeHandler durably invalidates a token before its natural expiry.
// POST /v1/tokens/revoke - No admin authentication required (the token itself
// is the credential). Idempotent: revoking an already-revoked token succeeds.
// Returns 204 No Content.
func (h *TokenHandler) RevokeHandler(c *gin.Context) {
	var req dto.RevokeTokenRequest

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

	// Call use case
	if err := h.tokenUseCase.Revoke(c.Request.Context(), req.Token); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	// Return 204 No Content with empty body
	c.Data(http.StatusNoContent, "application/json", nil)
}
