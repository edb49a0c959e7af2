// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/fs9io/identity/internal/validation"
)

// IssueTokenRequest contains the parameters for issuing a token.
// A nil TTL selects the server-configured default lifetime.
type IssueTokenRequest struct {
	UserID     string `json:"user_id"`
	TTLSeconds *int64 `json:"ttl_seconds"`
}

// Validate checks if the issue token request is valid.
func (r *IssueTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.UserID,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.TTLSeconds,
			validation.Min(int64(1)),
		),
	)
}

// ValidateTokenRequest contains the token to be validated.
type ValidateTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the validate token request is valid.
func (r *ValidateTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// RefreshTokenRequest contains the parameters for refreshing a token.
// A nil TTL selects the server-configured default for the replacement token.
type RefreshTokenRequest struct {
	Token      string `json:"token"`
	TTLSeconds *int64 `json:"ttl_seconds"`
}

// Validate checks if the refresh token request is valid.
func (r *RefreshTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
		validation.Field(&r.TTLSeconds,
			validation.Min(int64(1)),
		),
	)
}

// RevokeTokenRequest contains the token to be revoked.
type RevokeTokenRequest struct {
	Token string `json:"token"`
}

// Validate checks if the revoke token request is valid.
func (r *RevokeTokenRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Token,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}

// CreateNamespaceRequest contains the parameters for creating a new namespace.
type CreateNamespaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create namespace request is valid.
func (r *CreateNamespaceRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NamespaceName,
			validation.Length(1, 64),
		),
		validation.Field(&r.Description,
			validation.Length(0, 255),
		),
	)
}

// CreateUserRequest contains the parameters for creating a new directory user.
type CreateUserRequest struct {
	Username  string   `json:"username"`
	Namespace string   `json:"namespace"`
	Roles     []string `json:"roles"`
	IsActive  bool     `json:"is_active"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.NotBlank,
			customValidation.Username,
			validation.Length(1, 64),
		),
		validation.Field(&r.Namespace,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NamespaceName,
		),
		validation.Field(&r.Roles,
			validation.Required,
			validation.Each(customValidation.RoleName),
		),
	)
}

// UpdateUserRequest contains the mutable fields of a directory user.
// Username and owning namespace are immutable after creation.
type UpdateUserRequest struct {
	Roles    []string `json:"roles"`
	IsActive bool     `json:"is_active"`
}

// Validate checks if the update user request is valid.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Roles,
			validation.Required,
			validation.Each(customValidation.RoleName),
		),
	)
}
