package models

import (
	"time"

	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/google/uuid"
)

// UserProfileModel is the persistence model for a directory profile.
type UserProfileModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_user_profiles_tenant_user,priority:1"`
	UserID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_user_profiles_tenant_user,priority:2"`
	DisplayName    string          `gorm:"type:varchar(200);not null"`
	Email          string          `gorm:"type:varchar(200)"`
	OrganizationID *uuid.UUID      `gorm:"type:uuid;index"`
	IsStaff        bool            `gorm:"not null;default:false"`
	Active         bool            `gorm:"not null"`
	Roles          []UserRoleModel `gorm:"foreignKey:ProfileID;references:ID"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (UserProfileModel) TableName() string {
	return "user_profiles"
}

// ToDomain converts the persistence model to a domain Profile.
func (m *UserProfileModel) ToDomain() directory.Profile {
	roles := make([]string, len(m.Roles))
	for i, r := range m.Roles {
		roles[i] = r.Role
	}
	return directory.Profile{
		ID:             m.ID,
		TenantID:       m.TenantID,
		UserID:         m.UserID,
		DisplayName:    m.DisplayName,
		Email:          m.Email,
		Roles:          roles,
		OrganizationID: m.OrganizationID,
		IsStaff:        m.IsStaff,
		Active:         m.Active,
	}
}

// UserProfileModelFromDomain creates a persistence model from a domain Profile.
func UserProfileModelFromDomain(p *directory.Profile) *UserProfileModel {
	m := &UserProfileModel{
		ID:             p.ID,
		TenantID:       p.TenantID,
		UserID:         p.UserID,
		DisplayName:    p.DisplayName,
		Email:          p.Email,
		OrganizationID: p.OrganizationID,
		IsStaff:        p.IsStaff,
		Active:         p.Active,
		Roles:          make([]UserRoleModel, len(p.Roles)),
	}
	for i, role := range p.Roles {
		m.Roles[i] = UserRoleModel{ProfileID: p.ID, Role: role}
	}
	return m
}

// UserRoleModel is one role held by a profile.
type UserRoleModel struct {
	ProfileID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(50);primaryKey;index"`
}

// TableName returns the table name for GORM
func (UserRoleModel) TableName() string {
	return "user_profile_roles"
}
