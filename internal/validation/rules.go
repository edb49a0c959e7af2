// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/fs9io/identity/internal/errors"
	identityDomain "github.com/fs9io/identity/internal/identity/domain"
)

var (
	// namespaceNameRegex restricts namespace names to a filesystem-safe
	// alphabet: lowercase letters, digits, hyphens and underscores.
	namespaceNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

	// usernameRegex allows the same alphabet plus dots, which are common in
	// service account names.
	usernameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NamespaceName validates namespace name format
var NamespaceName = validation.NewStringRuleWithError(
	func(s string) bool {
		return namespaceNameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_namespace_name",
		"must contain only lowercase letters, digits, hyphens and underscores",
	),
)

// Username validates username format
var Username = validation.NewStringRuleWithError(
	func(s string) bool {
		return usernameRegex.MatchString(s)
	},
	validation.NewError(
		"validation_username",
		"must contain only lowercase letters, digits, dots, hyphens and underscores",
	),
)

// RoleName validates that a string is one of the known role names
var RoleName = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_role_type", "must be a string")
	}
	if !identityDomain.IsValidRole(identityDomain.Role(s)) {
		return validation.NewError("validation_role", "must be one of: read-only, read-write, admin")
	}
	return nil
})
