package persistence

import (
	"context"
	"time"

	"github.com/erp/feeengine/internal/domain/directory"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDirectoryRepository implements directory.Repository using GORM
type GormDirectoryRepository struct {
	db *gorm.DB
}

// NewGormDirectoryRepository creates a new GormDirectoryRepository
func NewGormDirectoryRepository(db *gorm.DB) *GormDirectoryRepository {
	return &GormDirectoryRepository{db: db}
}

func (r *GormDirectoryRepository) active(ctx context.Context, tenantID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Roles").
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("display_name ASC")
}

// FindByRole lists active profiles holding a role
func (r *GormDirectoryRepository) FindByRole(ctx context.Context, tenantID uuid.UUID, role string) ([]directory.Profile, error) {
	holders := r.db.Model(&models.UserRoleModel{}).Select("profile_id").Where("role = ?", role)
	return r.find(r.active(ctx, tenantID).Where("id IN (?)", holders))
}

// FindStaff lists active staff profiles
func (r *GormDirectoryRepository) FindStaff(ctx context.Context, tenantID uuid.UUID) ([]directory.Profile, error) {
	return r.find(r.active(ctx, tenantID).Where("is_staff = ?", true))
}

// FindByOrganization lists active profiles belonging to an organization
func (r *GormDirectoryRepository) FindByOrganization(ctx context.Context, tenantID, orgID uuid.UUID) ([]directory.Profile, error) {
	return r.find(r.active(ctx, tenantID).Where("organization_id = ?", orgID))
}

// Save creates or updates a profile and replaces its roles
func (r *GormDirectoryRepository) Save(ctx context.Context, p *directory.Profile) error {
	model := models.UserProfileModelFromDomain(p)
	now := time.Now()
	model.CreatedAt = now
	model.UpdatedAt = now

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Roles").
			Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"display_name", "email", "organization_id", "is_staff", "active", "updated_at"}),
			}).
			Create(model).Error; err != nil {
			return translateError(err)
		}
		if err := tx.Where("profile_id = ?", p.ID).Delete(&models.UserRoleModel{}).Error; err != nil {
			return err
		}
		if len(model.Roles) == 0 {
			return nil
		}
		return tx.Create(&model.Roles).Error
	})
}

func (r *GormDirectoryRepository) find(query *gorm.DB) ([]directory.Profile, error) {
	var rows []models.UserProfileModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	profiles := make([]directory.Profile, len(rows))
	for i := range rows {
		profiles[i] = rows[i].ToDomain()
	}
	return profiles, nil
}

var _ directory.Repository = (*GormDirectoryRepository)(nil)
