package persistence

import (
	"testing"

	"github.com/erp/feeengine/internal/domain/shared"
	"github.com/erp/feeengine/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newFeeEngineTestDB opens an in-memory SQLite database with the fee engine schema
func newFeeEngineTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection to :memory: would see its own empty database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.FeeEngine()...))
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func staffActor(tenantID uuid.UUID) shared.Actor {
	return shared.Actor{
		TenantID: tenantID,
		UserID:   uuid.New(),
		Username: "ops",
		Roles:    []string{shared.RoleStaffAdmin},
	}
}
