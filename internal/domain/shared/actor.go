package shared

import (
	"slices"

	"github.com/google/uuid"
)

// Role names carried in access tokens
const (
	RoleStaffAdmin = "staff_admin"
	RoleCEO        = "ceo"
	RoleLawyer     = "lawyer"
	RoleArranger   = "arranger"
	RoleSystem     = "system"
)

// Actor is the authenticated principal performing an operation.
// It is passed explicitly through every application service call.
type Actor struct {
	TenantID uuid.UUID
	UserID   uuid.UUID
	Username string
	Roles    []string
	// OrganizationID is the arranger or counterparty entity the user acts for, if any
	OrganizationID *uuid.UUID
}

// SystemActor returns the actor used by scheduled jobs and event handlers
func SystemActor(tenantID uuid.UUID) Actor {
	return Actor{
		TenantID: tenantID,
		Username: "system",
		Roles:    []string{RoleSystem},
	}
}

// HasRole reports whether the actor holds the role
func (a Actor) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

// IsStaffAdmin reports whether the actor holds the staff admin role
func (a Actor) IsStaffAdmin() bool {
	return a.HasRole(RoleStaffAdmin)
}

// IsSystem reports whether the actor is the internal system actor
func (a Actor) IsSystem() bool {
	return a.HasRole(RoleSystem)
}

// ActsFor reports whether the actor represents the given organization
func (a Actor) ActsFor(orgID uuid.UUID) bool {
	return a.OrganizationID != nil && *a.OrganizationID == orgID
}

// Identity returns a printable identifier for audit records
func (a Actor) Identity() string {
	if a.UserID == uuid.Nil {
		return a.Username
	}
	return a.UserID.String()
}

// Validate checks that the actor is scoped to a tenant
func (a Actor) Validate() error {
	if a.TenantID == uuid.Nil {
		return ErrUnauthorized.WithMessage("Actor is not scoped to a tenant")
	}
	return nil
}
