package ordering

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
)

// Plugin hooks the registry into gorm's create pipeline. Orders are assigned
// after the model's BeforeCreate hooks and before the INSERT, inside the
// transaction gorm opens for the create. Updates are never re-ordered.
type Plugin struct {
	registry *Registry
}

func NewPlugin(registry *Registry) *Plugin {
	return &Plugin{registry: registry}
}

func (p *Plugin) Name() string {
	return "ordering"
}

func (p *Plugin) Initialize(db *gorm.DB) error {
	return db.Callback().Create().
		After("gorm:before_create").
		Before("gorm:create").
		Register("ordering:assign", p.assign)
}

func (p *Plugin) assign(db *gorm.DB) {
	if db.Error != nil || db.Statement.Schema == nil {
		return
	}
	e, ok := p.registry.lookup(db.Statement.Schema.ModelType)
	if !ok {
		return
	}

	ctx := db.Statement.Context
	store := newBatchStore(NewGormStore(db.Session(&gorm.Session{NewDB: true})))

	rv := db.Statement.ReflectValue
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := p.assignValue(ctx, store, e, rv.Index(i)); err != nil {
				db.AddError(err)
				return
			}
		}
	case reflect.Struct, reflect.Ptr:
		if err := p.assignValue(ctx, store, e, rv); err != nil {
			db.AddError(err)
		}
	}
}

func (p *Plugin) assignValue(ctx context.Context, store *batchStore, e *entry, v reflect.Value) error {
	v = reflect.Indirect(v)
	if !v.CanAddr() {
		return fmt.Errorf("ordering: cannot assign order to unaddressable %s", v.Type())
	}
	record, ok := v.Addr().Interface().(Orderable)
	if !ok {
		return fmt.Errorf("ordering: %s does not implement Orderable", v.Type())
	}
	order, err := p.registry.AssignIfAbsent(ctx, store, record)
	if err != nil {
		return err
	}
	store.observe(e.table, e.filter(ctx, v), order)
	return nil
}
