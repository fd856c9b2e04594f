// Package ordering keeps a per-group sequence number on sibling rows.
//
// An entity type is registered once with the columns that define its sibling
// group (a module's course, a content's module). When a record of that type is
// created without an explicit order, it is placed after the current last
// sibling: max(order)+1, or 0 when the group is empty. An explicit order is
// kept as-is and costs no query. Orders are never recomputed on update.
package ordering

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"gorm.io/gorm/schema"
)

// DefaultColumn is the order column used when Config.Column is empty
const DefaultColumn = "order_index"

// Orderable is implemented by records that carry an order value
type Orderable interface {
	// OrderValue returns the current order and whether it has been set
	OrderValue() (int, bool)
	SetOrderValue(order int)
}

// Config describes how one entity type is ordered
type Config struct {
	// GroupBy lists the struct fields or column names whose values define the sibling group
	GroupBy []string
	// Column is the order column, DefaultColumn when empty
	Column string
}

type entry struct {
	table   string
	column  string
	groupBy []*schema.Field
}

func (e *entry) filter(ctx context.Context, record reflect.Value) map[string]any {
	filter := make(map[string]any, len(e.groupBy))
	for _, f := range e.groupBy {
		value, _ := f.ValueOf(ctx, record)
		filter[f.DBName] = value
	}
	return filter
}

func (e *entry) groupColumns() []string {
	cols := make([]string, len(e.groupBy))
	for i, f := range e.groupBy {
		cols[i] = f.DBName
	}
	return cols
}

// Registry holds the validated ordering configuration of every entity type
type Registry struct {
	namer      schema.Namer
	cacheStore *sync.Map

	mu      sync.RWMutex
	entries map[reflect.Type]*entry
}

// NewRegistry returns an empty registry. namer must match the one the database
// session uses so table and column names line up.
func NewRegistry(namer schema.Namer) *Registry {
	if namer == nil {
		namer = schema.NamingStrategy{}
	}
	return &Registry{
		namer:      namer,
		cacheStore: &sync.Map{},
		entries:    make(map[reflect.Type]*entry),
	}
}

// Register validates cfg against the model's schema and records it
func (r *Registry) Register(model Orderable, cfg Config) error {
	s, err := schema.Parse(model, r.cacheStore, r.namer)
	if err != nil {
		return &ConfigurationError{Model: fmt.Sprintf("%T", model), Reason: err.Error()}
	}
	if len(cfg.GroupBy) == 0 {
		return &ConfigurationError{Model: s.Name, Reason: "at least one grouping field is required"}
	}

	column := cfg.Column
	if column == "" {
		column = DefaultColumn
	}
	orderField := s.LookUpField(column)
	if orderField == nil || orderField.DBName == "" {
		return &ConfigurationError{Model: s.Name, Field: column, Reason: "order column does not exist"}
	}

	e := &entry{table: s.Table, column: orderField.DBName}
	seen := make(map[string]bool, len(cfg.GroupBy))
	for _, name := range cfg.GroupBy {
		f := s.LookUpField(name)
		if f == nil || f.DBName == "" {
			return &ConfigurationError{Model: s.Name, Field: name, Reason: "grouping field does not exist"}
		}
		if f.DBName == orderField.DBName {
			return &ConfigurationError{Model: s.Name, Field: name, Reason: "order column cannot group itself"}
		}
		if seen[f.DBName] {
			return &ConfigurationError{Model: s.Name, Field: name, Reason: "grouping field listed twice"}
		}
		seen[f.DBName] = true
		e.groupBy = append(e.groupBy, f)
	}

	r.mu.Lock()
	r.entries[s.ModelType] = e
	r.mu.Unlock()
	return nil
}

// MustRegister is Register for startup code, where a bad configuration is fatal
func (r *Registry) MustRegister(model Orderable, cfg Config) {
	if err := r.Register(model, cfg); err != nil {
		panic(err)
	}
}

func (r *Registry) lookup(t reflect.Type) (*entry, bool) {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[t]
	return e, ok
}

// sortedEntries returns the registered entries ordered by table name
func (r *Registry) sortedEntries() []*entry {
	r.mu.RLock()
	out := make([]*entry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].table < out[j].table })
	return out
}

// AssignIfAbsent gives record an order when it has none and returns the
// record's order. An explicit order is returned untouched without touching
// the store; otherwise exactly one MaxOrder query is issued.
func (r *Registry) AssignIfAbsent(ctx context.Context, store Store, record Orderable) (int, error) {
	e, ok := r.lookup(reflect.TypeOf(record))
	if !ok {
		return 0, fmt.Errorf("%w: %T", ErrNotRegistered, record)
	}
	if order, set := record.OrderValue(); set {
		return order, nil
	}

	filter := e.filter(ctx, reflect.Indirect(reflect.ValueOf(record)))
	max, found, err := store.MaxOrder(ctx, e.table, e.column, filter)
	if err != nil {
		return 0, &StoreQueryError{Table: e.table, Filter: filter, Err: err}
	}

	next := 0
	if found {
		next = max + 1
	}
	record.SetOrderValue(next)
	return next, nil
}
