package ordering

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type note struct {
	ID   uint
	Text string
}

type draft struct {
	ID       uint
	BookID   uint
	Position *int `gorm:"column:order_index"`
}

func (d *draft) OrderValue() (int, bool) {
	if d.Position == nil {
		return 0, false
	}
	return *d.Position, true
}

func (d *draft) SetOrderValue(order int) { d.Position = &order }

func openTestDB(t *testing.T) (*gorm.DB, *Registry) {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	registry := NewRegistry(db.NamingStrategy)
	registry.MustRegister(&chapter{}, Config{GroupBy: []string{"BookID"}})
	require.NoError(t, db.Use(NewPlugin(registry)))
	require.NoError(t, db.AutoMigrate(&chapter{}, &note{}))
	return db, registry
}

func orders(t *testing.T, db *gorm.DB, bookID uint) []int {
	t.Helper()
	var chapters []chapter
	require.NoError(t, db.Where("book_id = ?", bookID).Order("id").Find(&chapters).Error)
	out := make([]int, len(chapters))
	for i, c := range chapters {
		out[i] = *c.Position
	}
	return out
}

func TestPlugin_AssignsOnCreate(t *testing.T) {
	db, _ := openTestDB(t)

	for _, c := range []*chapter{
		{BookID: 1, Title: "A"},
		{BookID: 1, Title: "B"},
		{BookID: 1, Title: "C", Position: intPtr(99)},
		{BookID: 1, Title: "D"},
		{BookID: 2, Title: "other book"},
	} {
		require.NoError(t, db.Create(c).Error)
	}

	assert.Equal(t, []int{0, 1, 99, 100}, orders(t, db, 1))
	assert.Equal(t, []int{0}, orders(t, db, 2))
}

func TestPlugin_DeletedMaxIsReused(t *testing.T) {
	db, _ := openTestDB(t)

	a := &chapter{BookID: 1}
	b := &chapter{BookID: 1}
	require.NoError(t, db.Create(a).Error)
	require.NoError(t, db.Create(b).Error)
	require.NoError(t, db.Delete(b).Error)

	c := &chapter{BookID: 1}
	require.NoError(t, db.Create(c).Error)
	assert.Equal(t, 1, *c.Position)
}

func TestPlugin_BatchCreate(t *testing.T) {
	db, _ := openTestDB(t)
	require.NoError(t, db.Create(&chapter{BookID: 1, Position: intPtr(3)}).Error)

	batch := []chapter{
		{BookID: 1},
		{BookID: 1},
		{BookID: 1, Position: intPtr(10)},
		{BookID: 1},
		{BookID: 2},
	}
	require.NoError(t, db.Create(&batch).Error)

	got := make([]int, len(batch))
	for i, c := range batch {
		got[i] = *c.Position
	}
	assert.Equal(t, []int{4, 5, 10, 11, 0}, got)
}

func TestPlugin_UpdateKeepsOrder(t *testing.T) {
	db, _ := openTestDB(t)

	first := &chapter{BookID: 1}
	second := &chapter{BookID: 1}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	first.Title = "renamed"
	require.NoError(t, db.Save(first).Error)
	require.NoError(t, db.Model(second).Update("title", "also renamed").Error)

	assert.Equal(t, []int{0, 1}, orders(t, db, 1))
}

func TestPlugin_IgnoresUnregisteredModels(t *testing.T) {
	db, _ := openTestDB(t)
	require.NoError(t, db.Create(&note{Text: "plain"}).Error)
}

func TestPlugin_StoreErrorAbortsCreate(t *testing.T) {
	db, registry := openTestDB(t)
	// registered but never migrated, so the max query fails
	registry.MustRegister(&draft{}, Config{GroupBy: []string{"book_id"}})

	err := db.Create(&draft{BookID: 1}).Error
	var queryErr *StoreQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "drafts", queryErr.Table)
}

func TestGormStore_MaxOrder(t *testing.T) {
	db, _ := openTestDB(t)
	store := NewGormStore(db)
	ctx := context.Background()

	_, found, err := store.MaxOrder(ctx, "chapters", "order_index", map[string]any{"book_id": 1})
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, db.Create(&chapter{BookID: 1, Position: intPtr(0)}).Error)
	max, found, err := store.MaxOrder(ctx, "chapters", "order_index", map[string]any{"book_id": 1})
	require.NoError(t, err)
	assert.True(t, found, "a single row at order 0 is not an empty group")
	assert.Equal(t, 0, max)
}

func TestFindDuplicates(t *testing.T) {
	db, registry := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&chapter{BookID: 1, Position: intPtr(2)}).Error)
	require.NoError(t, db.Create(&chapter{BookID: 1, Position: intPtr(2)}).Error)
	require.NoError(t, db.Create(&chapter{BookID: 1}).Error)
	require.NoError(t, db.Create(&chapter{BookID: 2, Position: intPtr(2)}).Error)

	duplicates, err := FindDuplicates(ctx, db, registry)
	require.NoError(t, err)
	require.Len(t, duplicates, 1)

	d := duplicates[0]
	assert.Equal(t, "chapters", d.Table)
	assert.EqualValues(t, 1, d.Group["book_id"])
	assert.Equal(t, 2, d.Order)
	assert.Equal(t, 2, d.Count)
	assert.Contains(t, d.String(), "order=2")
}
