package gormtabular

import (
	"context"
	"reflect"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/theplant/tabular"
)

// ColumnDetector inspects one schema field and either claims it by
// returning a column for it, or reports false to let the next detector
// try. TableFor consults detectors in order, first match wins.
type ColumnDetector func(db *gorm.DB, s *schema.Schema, field *schema.Field) (tabular.Column, bool)

// DefaultDetectors returns the detection order used by TableFor:
// many-to-many relation lists first, then type-specific columns, with
// TextColumnFor as the unconditional fallback.
func DefaultDetectors() []ColumnDetector {
	return []ColumnDetector{
		RelationListColumnFor,
		BoolColumnFor,
		JSONColumnFor,
		TextColumnFor,
	}
}

// RelationListColumnFor claims fields backed by a many-to-many
// relationship. The column's verbose name is the humanized field name
// with its first character upper-cased.
func RelationListColumnFor(db *gorm.DB, s *schema.Schema, field *schema.Field) (tabular.Column, bool) {
	rel, ok := s.Relationships.Relations[field.Name]
	if !ok || rel.Type != schema.Many2Many {
		return nil, false
	}
	return tabular.NewRelationList(
		tabular.RelationListConfig[any]{},
		tabular.WithVerboseName(tabular.Ucfirst(tabular.HumanizeFieldName(field.Name))),
	), true
}

func BoolColumnFor(db *gorm.DB, s *schema.Schema, field *schema.Field) (tabular.Column, bool) {
	if field.DataType != schema.Bool {
		return nil, false
	}
	return tabular.NewBool(), true
}

func JSONColumnFor(db *gorm.DB, s *schema.Schema, field *schema.Field) (tabular.Column, bool) {
	if field.DataType != "json" {
		return nil, false
	}
	return tabular.NewJSON(), true
}

func TextColumnFor(db *gorm.DB, s *schema.Schema, field *schema.Field) (tabular.Column, bool) {
	return tabular.NewText(), true
}

// TableFor builds a table for the model type T by running the
// detectors over its parsed schema, in field declaration order.
// Relationship fields other than many-to-many are skipped.
func TableFor[T any](db *gorm.DB, opts ...Option[T]) (*tabular.Table[T], error) {
	options := &Options[T]{}
	for _, opt := range opts {
		opt(options)
	}
	detectors := options.Detectors
	if len(detectors) == 0 {
		detectors = DefaultDetectors()
	}

	model, err := zeroModel[T]()
	if err != nil {
		return nil, err
	}
	s, err := parseSchema(db, model)
	if err != nil {
		return nil, err
	}

	var columns []tabular.BoundColumn[T]
	for _, field := range s.Fields {
		rel, isRelation := s.Relationships.Relations[field.Name]
		if isRelation && rel.Type != schema.Many2Many {
			continue
		}
		for _, detect := range detectors {
			column, ok := detect(db, s, field)
			if !ok {
				continue
			}
			bound := tabular.BoundColumn[T]{Name: field.Name, Column: column}
			if isRelation {
				bound.Value = func(ctx context.Context, row T) (any, error) {
					return &association{db: db, row: row, rel: rel}, nil
				}
			}
			columns = append(columns, bound)
			break
		}
	}
	if len(columns) == 0 {
		return nil, errors.Errorf("no columns detected for %T", model)
	}
	return tabular.NewTable(columns, options.CellHooks...), nil
}

func parseSchema(db *gorm.DB, model any) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, errors.Wrap(err, "failed to parse schema for model")
	}
	return stmt.Schema, nil
}

func zeroModel[T any]() (T, error) {
	var model T
	rt := reflect.TypeOf(model)
	if rt == nil {
		return model, errors.New("model type must be a struct or struct pointer")
	}
	if rt.Kind() == reflect.Ptr {
		model = reflect.New(rt.Elem()).Interface().(T)
	} else if rt.Kind() != reflect.Struct {
		return model, errors.New("model type must be a struct or struct pointer")
	}
	return model, nil
}
