package domain

import (
	"time"

	"github.com/google/uuid"
)

// Namespace is the tenant boundary grouping users and their resources.
type Namespace struct {
	ID          uuid.UUID
	Name        string // unique, lowercase alphanumeric/hyphen/underscore
	Description string
	CreatedAt   time.Time
}

// IsProtected reports whether the namespace cannot be deleted.
func (n *Namespace) IsProtected() bool {
	return n.Name == DefaultNamespaceName
}

// CreateNamespaceInput contains the parameters for creating a new namespace.
type CreateNamespaceInput struct {
	Name        string
	Description string
}
