package directory

import (
	"context"
	"slices"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/google/uuid"
)

// Profile is a staff or counterparty user known to the engine, used to resolve
// approval signers and notification audiences
type Profile struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	UserID         uuid.UUID
	DisplayName    string
	Email          string
	Roles          []string
	OrganizationID *uuid.UUID
	IsStaff        bool
	Active         bool
}

// HasRole reports whether the profile holds the role
func (p Profile) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// Repository resolves user profiles
type Repository interface {
	// FindByRole lists active profiles holding a role
	FindByRole(ctx context.Context, tenantID uuid.UUID, role string) ([]Profile, error)

	// FindStaff lists active staff profiles
	FindStaff(ctx context.Context, tenantID uuid.UUID) ([]Profile, error)

	// FindByOrganization lists active profiles belonging to an organization
	FindByOrganization(ctx context.Context, tenantID, orgID uuid.UUID) ([]Profile, error)

	// Save creates or updates a profile
	Save(ctx context.Context, p *Profile) error
}

// ResolveSigner picks the approval signer: a CEO if one exists, else any staff profile.
func ResolveSigner(ctx context.Context, repo Repository, tenantID uuid.UUID) (*Profile, error) {
	ceos, err := repo.FindByRole(ctx, tenantID, shared.RoleCEO)
	if err != nil {
		return nil, err
	}
	if len(ceos) > 0 {
		return &ceos[0], nil
	}
	staff, err := repo.FindStaff(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if len(staff) > 0 {
		return &staff[0], nil
	}
	return nil, shared.ErrNotFound.WithMessage("No CEO or staff profile available to sign")
}
