package utils

import (
	"context"
	"edu/database"
	"edu/models/course"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	registry, err := database.Setup(db)
	require.NoError(t, err)
	database.Database = database.DbInstance{Db: db, Ordering: registry}
	return db
}

func TestRunOrderAudit(t *testing.T) {
	db := setupDB(t)
	explicit := 4

	modules := []course.Module{
		{CourseID: 1, Title: "A", Order: &explicit},
		{CourseID: 1, Title: "B", Order: &explicit},
		{CourseID: 1, Title: "C"},
		{CourseID: 2, Title: "D", Order: &explicit},
	}
	require.NoError(t, db.Create(&modules).Error)
	assert.Equal(t, 5, *modules[2].Order)

	duplicates, err := RunOrderAudit(context.Background())
	require.NoError(t, err)
	require.Len(t, duplicates, 1)
	assert.Equal(t, "modules", duplicates[0].Table)
	assert.EqualValues(t, 1, duplicates[0].Group["course_id"])
	assert.Equal(t, 4, duplicates[0].Order)
	assert.Equal(t, 2, duplicates[0].Count)
}

func TestRunOrderAuditClean(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&course.Content{ModuleID: 1, Kind: course.KindText, ItemID: 1}).Error)
	require.NoError(t, db.Create(&course.Content{ModuleID: 1, Kind: course.KindText, ItemID: 2}).Error)

	duplicates, err := RunOrderAudit(context.Background())
	require.NoError(t, err)
	assert.Empty(t, duplicates)
}

func TestInitializeOrderAuditSchedulerRejectsBadSpec(t *testing.T) {
	_, err := InitializeOrderAuditScheduler("every now and then")
	assert.Error(t, err)

	c, err := InitializeOrderAuditScheduler("@daily")
	require.NoError(t, err)
	c.Stop()
}
