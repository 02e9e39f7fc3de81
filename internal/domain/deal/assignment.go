package deal

import (
	"github.com/google/uuid"
)

// AssignmentRole is the capacity a user is assigned to a deal in
type AssignmentRole string

const (
	AssignmentLawyer AssignmentRole = "lawyer"
)

// Assignment links a user to a deal in a given role
type Assignment struct {
	TenantID uuid.UUID
	DealID   uuid.UUID
	UserID   uuid.UUID
	Role     AssignmentRole
}
