package gormtabular

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Association adapts a GORM association on one row to
// tabular.Relation. Build it per row with NewAssociation; the row must
// carry its primary key.
type Association[T any] struct {
	db    *gorm.DB
	row   any
	field string
}

func NewAssociation[T any](db *gorm.DB, row any, field string) *Association[T] {
	return &Association[T]{db: db, row: row, field: field}
}

func (a *Association[T]) Exists(ctx context.Context) (bool, error) {
	assoc := a.db.WithContext(ctx).Model(modelRef(a.row)).Association(a.field)
	count := assoc.Count()
	if assoc.Error != nil {
		return false, errors.Wrapf(assoc.Error, "count association %q", a.field)
	}
	return count > 0, nil
}

func (a *Association[T]) All(ctx context.Context) ([]T, error) {
	return a.Scope(ctx)
}

// Scope loads the related records through the given gorm scopes,
// letting a RelationList filter hook order, limit or exclude at the
// SQL level.
func (a *Association[T]) Scope(ctx context.Context, scopes ...func(db *gorm.DB) *gorm.DB) ([]T, error) {
	tx := a.db.WithContext(ctx)
	for _, scope := range scopes {
		tx = scope(tx)
	}
	var records []T
	if err := tx.Model(modelRef(a.row)).Association(a.field).Find(&records); err != nil {
		return nil, errors.Wrapf(err, "load association %q", a.field)
	}
	return records, nil
}

// association is the runtime-typed accessor behind auto-generated
// tables, where the related element type is only known from the parsed
// schema.
type association struct {
	db  *gorm.DB
	row any
	rel *schema.Relationship
}

func (a *association) Exists(ctx context.Context) (bool, error) {
	assoc := a.db.WithContext(ctx).Model(modelRef(a.row)).Association(a.rel.Name)
	count := assoc.Count()
	if assoc.Error != nil {
		return false, errors.Wrapf(assoc.Error, "count association %q", a.rel.Name)
	}
	return count > 0, nil
}

func (a *association) All(ctx context.Context) ([]any, error) {
	out := reflect.New(reflect.SliceOf(reflect.PointerTo(a.rel.FieldSchema.ModelType)))
	assoc := a.db.WithContext(ctx).Model(modelRef(a.row)).Association(a.rel.Name)
	if err := assoc.Find(out.Interface()); err != nil {
		return nil, errors.Wrapf(err, "load association %q", a.rel.Name)
	}
	loaded := out.Elem()
	records := make([]any, loaded.Len())
	for i := range records {
		records[i] = loaded.Index(i).Interface()
	}
	return records, nil
}

// gorm needs a struct pointer to resolve the association owner, but
// table rows are often passed by value.
func modelRef(row any) any {
	rv := reflect.ValueOf(row)
	if rv.Kind() == reflect.Ptr {
		return row
	}
	pv := reflect.New(rv.Type())
	pv.Elem().Set(rv)
	return pv.Interface()
}
