// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

// IssueTokenResponse contains the result of issuing or refreshing a token.
// SECURITY: The token is only returned once and must be saved securely.
type IssueTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssueOutputToResponse converts a token issuance result to an API response.
func MapIssueOutputToResponse(output *identityDomain.IssueTokenOutput) IssueTokenResponse {
	return IssueTokenResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
	}
}

// ValidateTokenResponse is the structured verdict of a validation call.
// Validation always answers 200 with a verdict; the error and claim fields
// are only present when they apply.
type ValidateTokenResponse struct {
	Valid     bool       `json:"valid"`
	Error     string     `json:"error,omitempty"`
	UserID    string     `json:"user_id,omitempty"`
	Namespace string     `json:"namespace,omitempty"`
	Roles     []string   `json:"roles,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MapVerdictToResponse converts a domain verdict to an API response.
func MapVerdictToResponse(verdict *identityDomain.TokenVerdict) ValidateTokenResponse {
	if !verdict.Valid {
		return ValidateTokenResponse{
			Valid: false,
			Error: string(verdict.Reason),
		}
	}
	expiresAt := verdict.ExpiresAt
	return ValidateTokenResponse{
		Valid:     true,
		UserID:    verdict.Subject,
		Namespace: verdict.Namespace,
		Roles:     identityDomain.RolesToStrings(verdict.Roles),
		ExpiresAt: &expiresAt,
	}
}

// NamespaceResponse represents a namespace in API responses.
type NamespaceResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapNamespaceToResponse converts a domain namespace to an API response.
func MapNamespaceToResponse(namespace *identityDomain.Namespace) NamespaceResponse {
	return NamespaceResponse{
		ID:          namespace.ID.String(),
		Name:        namespace.Name,
		Description: namespace.Description,
		CreatedAt:   namespace.CreatedAt,
	}
}

// ListNamespacesResponse represents a paginated list of namespaces in API responses.
type ListNamespacesResponse struct {
	Data []NamespaceResponse `json:"data"`
}

// MapNamespacesToListResponse converts a slice of domain namespaces to a list API response.
func MapNamespacesToListResponse(namespaces []*identityDomain.Namespace) ListNamespacesResponse {
	namespaceResponses := make([]NamespaceResponse, 0, len(namespaces))
	for _, namespace := range namespaces {
		namespaceResponses = append(namespaceResponses, MapNamespaceToResponse(namespace))
	}
	return ListNamespacesResponse{
		Data: namespaceResponses,
	}
}

// UserResponse represents a directory user in API responses.
type UserResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	NamespaceID string     `json:"namespace_id"`
	Roles       []string   `json:"roles"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// MapUserToResponse converts a domain user to an API response.
func MapUserToResponse(user *identityDomain.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		NamespaceID: user.NamespaceID.String(),
		Roles:       identityDomain.RolesToStrings(user.Roles),
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}

// ListUsersResponse represents a paginated list of users in API responses.
type ListUsersResponse struct {
	Data []UserResponse `json:"data"`
}

// MapUsersToListResponse converts a slice of domain users to a list API response.
func MapUsersToListResponse(users []*identityDomain.User) ListUsersResponse {
	userResponses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		userResponses = append(userResponses, MapUserToResponse(user))
	}
	return ListUsersResponse{
		Data: userResponses,
	}
}
