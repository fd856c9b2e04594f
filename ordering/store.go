package ordering

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store answers the one question the assigner needs: the largest order among
// the rows of table matching every filter entry. found is false for an empty group.
type Store interface {
	MaxOrder(ctx context.Context, table, column string, filter map[string]any) (max int, found bool, err error)
}

// GormStore runs MaxOrder on a gorm session, inside its transaction if it has one
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) MaxOrder(ctx context.Context, table, column string, filter map[string]any) (int, bool, error) {
	var max sql.NullInt64
	err := s.db.WithContext(ctx).
		Table(table).
		Where(filter).
		Select("MAX(?)", clause.Column{Name: column}).
		Scan(&max).Error
	if err != nil {
		return 0, false, err
	}
	if !max.Valid {
		return 0, false, nil
	}
	return int(max.Int64), true, nil
}

// batchStore serves a multi-row insert: each group is queried once and later
// rows continue from the highest order already handed out in the batch.
type batchStore struct {
	Store
	groups map[string]*batchGroup
}

type batchGroup struct {
	max     int
	found   bool
	queried bool
}

func newBatchStore(store Store) *batchStore {
	return &batchStore{Store: store, groups: make(map[string]*batchGroup)}
}

func (s *batchStore) MaxOrder(ctx context.Context, table, column string, filter map[string]any) (int, bool, error) {
	key := groupKey(table, filter)
	g, ok := s.groups[key]
	if ok && g.queried {
		return g.max, g.found, nil
	}
	max, found, err := s.Store.MaxOrder(ctx, table, column, filter)
	if err != nil {
		return 0, false, err
	}
	if !ok {
		g = &batchGroup{}
		s.groups[key] = g
	}
	if g.found && (!found || g.max > max) {
		max, found = g.max, true
	}
	g.max, g.found, g.queried = max, found, true
	return max, found, nil
}

// observe records an order placed in the batch, explicit or assigned
func (s *batchStore) observe(table string, filter map[string]any, order int) {
	key := groupKey(table, filter)
	g, ok := s.groups[key]
	if !ok {
		g = &batchGroup{}
		s.groups[key] = g
	}
	if !g.found || order > g.max {
		g.max, g.found = order, true
	}
}

func groupKey(table string, filter map[string]any) string {
	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(table)
	for _, k := range keys {
		fmt.Fprintf(&b, "|%s=%v", k, filter[k])
	}
	return b.String()
}
