package ordering

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chapter struct {
	ID       uint
	BookID   uint
	VolumeID uint
	Title    string
	Position *int `gorm:"column:order_index"`
}

func (c *chapter) OrderValue() (int, bool) {
	if c.Position == nil {
		return 0, false
	}
	return *c.Position, true
}

func (c *chapter) SetOrderValue(order int) { c.Position = &order }

type unordered struct {
	ID    uint
	Order *int
}

func (u *unordered) OrderValue() (int, bool) { return 0, u.Order != nil }
func (u *unordered) SetOrderValue(order int) { u.Order = &order }

type row struct {
	group map[string]any
	order int
}

// memStore keeps rows in memory and counts MaxOrder calls
type memStore struct {
	rows  []row
	calls int
	err   error
}

func (s *memStore) MaxOrder(_ context.Context, _, _ string, filter map[string]any) (int, bool, error) {
	s.calls++
	if s.err != nil {
		return 0, false, s.err
	}
	max, found := 0, false
	for _, r := range s.rows {
		if !sameGroup(r.group, filter) {
			continue
		}
		if !found || r.order > max {
			max, found = r.order, true
		}
	}
	return max, found, nil
}

func (s *memStore) insert(c *chapter) {
	s.rows = append(s.rows, row{group: map[string]any{"book_id": c.BookID}, order: *c.Position})
}

func (s *memStore) remove(order int) {
	for i, r := range s.rows {
		if r.order == order {
			s.rows = append(s.rows[:i], s.rows[i+1:]...)
			return
		}
	}
}

func sameGroup(a, b map[string]any) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func intPtr(i int) *int { return &i }

func newChapterRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&chapter{}, Config{GroupBy: []string{"BookID"}}))
	return r
}

func TestAssignIfAbsent_EmptyGroupStartsAtZero(t *testing.T) {
	r := newChapterRegistry(t)
	store := &memStore{}

	c := &chapter{BookID: 1}
	order, err := r.AssignIfAbsent(context.Background(), store, c)
	require.NoError(t, err)
	assert.Equal(t, 0, order)
	assert.Equal(t, 0, *c.Position)
	assert.Equal(t, 1, store.calls)
}

func TestAssignIfAbsent_AppendsAfterLastSibling(t *testing.T) {
	r := newChapterRegistry(t)
	store := &memStore{rows: []row{
		{group: map[string]any{"book_id": uint(1)}, order: 0},
		{group: map[string]any{"book_id": uint(1)}, order: 7},
		{group: map[string]any{"book_id": uint(2)}, order: 40},
	}}

	c := &chapter{BookID: 1}
	order, err := r.AssignIfAbsent(context.Background(), store, c)
	require.NoError(t, err)
	assert.Equal(t, 8, order, "other groups must not affect the result")
}

func TestAssignIfAbsent_ExplicitOrderSkipsStore(t *testing.T) {
	r := newChapterRegistry(t)
	store := &memStore{err: errors.New("must not be called")}

	c := &chapter{BookID: 1, Position: intPtr(0)}
	order, err := r.AssignIfAbsent(context.Background(), store, c)
	require.NoError(t, err)
	assert.Equal(t, 0, order, "an explicit zero is still explicit")
	assert.Equal(t, 0, store.calls)
}

func TestAssignIfAbsent_Sequence(t *testing.T) {
	r := newChapterRegistry(t)
	store := &memStore{}
	ctx := context.Background()

	place := func(c *chapter) int {
		t.Helper()
		order, err := r.AssignIfAbsent(ctx, store, c)
		require.NoError(t, err)
		store.insert(c)
		return order
	}

	assert.Equal(t, 0, place(&chapter{BookID: 1, Title: "A"}))
	assert.Equal(t, 1, place(&chapter{BookID: 1, Title: "B"}))

	before := store.calls
	assert.Equal(t, 99, place(&chapter{BookID: 1, Title: "C", Position: intPtr(99)}))
	assert.Equal(t, before, store.calls, "explicit order issues no query")

	assert.Equal(t, 100, place(&chapter{BookID: 1, Title: "D"}))

	store.remove(100)
	assert.Equal(t, 100, place(&chapter{BookID: 1, Title: "E"}), "gaps are not reused but the max is")
}

func TestAssignIfAbsent_StoreError(t *testing.T) {
	r := newChapterRegistry(t)
	cause := errors.New("connection reset")
	store := &memStore{err: cause}

	c := &chapter{BookID: 3}
	_, err := r.AssignIfAbsent(context.Background(), store, c)
	require.Error(t, err)

	var queryErr *StoreQueryError
	require.ErrorAs(t, err, &queryErr)
	assert.Equal(t, "chapters", queryErr.Table)
	assert.Equal(t, map[string]any{"book_id": uint(3)}, queryErr.Filter)
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, c.Position, "record is left unassigned on failure")
}

func TestAssignIfAbsent_NotRegistered(t *testing.T) {
	r := NewRegistry(nil)
	_, err := r.AssignIfAbsent(context.Background(), &memStore{}, &chapter{})
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestRegister_CompositeGroup(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&chapter{}, Config{GroupBy: []string{"book_id", "VolumeID"}}))

	store := &memStore{rows: []row{
		{group: map[string]any{"book_id": uint(1), "volume_id": uint(2)}, order: 4},
		{group: map[string]any{"book_id": uint(1), "volume_id": uint(3)}, order: 9},
	}}
	order, err := r.AssignIfAbsent(context.Background(), store, &chapter{BookID: 1, VolumeID: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, order)
}

func TestRegister_ConfigurationErrors(t *testing.T) {
	tests := []struct {
		name  string
		model Orderable
		cfg   Config
		field string
	}{
		{name: "no grouping fields", model: &chapter{}, cfg: Config{}},
		{name: "unknown grouping field", model: &chapter{}, cfg: Config{GroupBy: []string{"shelf_id"}}, field: "shelf_id"},
		{name: "unknown order column", model: &unordered{}, cfg: Config{GroupBy: []string{"id"}}, field: DefaultColumn},
		{name: "order column groups itself", model: &chapter{}, cfg: Config{GroupBy: []string{"order_index"}}, field: "order_index"},
		{name: "field listed twice", model: &chapter{}, cfg: Config{GroupBy: []string{"book_id", "BookID"}}, field: "BookID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewRegistry(nil).Register(tt.model, tt.cfg)
			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestRegister_CustomColumn(t *testing.T) {
	r := NewRegistry(nil)
	require.NoError(t, r.Register(&unordered{}, Config{GroupBy: []string{"id"}, Column: "order"}))
	e, ok := r.lookup(reflect.TypeOf(&unordered{}))
	require.True(t, ok)
	assert.Equal(t, "order", e.column)
}

func TestMustRegister_Panics(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(nil).MustRegister(&chapter{}, Config{})
	})
}

func TestBatchStore_QueriesEachGroupOnce(t *testing.T) {
	inner := &memStore{rows: []row{{group: map[string]any{"book_id": uint(1)}, order: 2}}}
	store := newBatchStore(inner)
	ctx := context.Background()
	filter := map[string]any{"book_id": uint(1)}

	max, found, err := store.MaxOrder(ctx, "chapters", "order_index", filter)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 2, max)

	store.observe("chapters", filter, 3)
	max, _, err = store.MaxOrder(ctx, "chapters", "order_index", filter)
	require.NoError(t, err)
	assert.Equal(t, 3, max)
	assert.Equal(t, 1, inner.calls)
}

func TestBatchStore_ObservedBeforeQuery(t *testing.T) {
	inner := &memStore{}
	store := newBatchStore(inner)
	filter := map[string]any{"book_id": uint(5)}

	store.observe("chapters", filter, 50)
	max, found, err := store.MaxOrder(context.Background(), "chapters", "order_index", filter)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 50, max, "an explicit order earlier in the batch counts")
}
