package tabular

import (
	"context"
	"html/template"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Placeholder is rendered for cells that have nothing to show, such as
// an empty many-to-many relation.
const Placeholder = "-"

// Relation is the read-only handle a RelationList renders from. The
// gormtabular package provides implementations backed by GORM
// associations; anything that can test emptiness and yield its records
// satisfies it.
type Relation[T any] interface {
	Exists(ctx context.Context) (bool, error)
	All(ctx context.Context) ([]T, error)
}

// RelationListConfig configures the hooks and the separator of a
// RelationList. Zero values select the defaults: DisplayText as the
// transform, Relation.All as the filter, ", " as the separator.
type RelationListConfig[T any] struct {
	// Transform converts one related record to its display text. The
	// output is escaped before joining, so it is never trusted as
	// markup.
	Transform func(record T) string
	// Filter turns the relation accessor into the records to display,
	// in display order. Override it to sort, limit or exclude records.
	Filter func(ctx context.Context, rel Relation[T]) ([]T, error)
	// Separator is inserted between items, escaped like the items.
	Separator string
}

// RelationList displays the members of a many-to-many relation as an
// escaped, separator-joined list. Ordering defaults to disabled since
// a relation has no single value to order rows by.
type RelationList[T any] struct {
	BaseColumn
	transform func(T) string
	filter    func(context.Context, Relation[T]) ([]T, error)
	separator string
}

func NewRelationList[T any](cfg RelationListConfig[T], opts ...ColumnOption) *RelationList[T] {
	base := NewBaseColumn(opts...)
	if base.Config().Orderable == nil {
		base.Config().Orderable = lo.ToPtr(false)
	}

	c := &RelationList[T]{
		BaseColumn: base,
		transform:  cfg.Transform,
		filter:     cfg.Filter,
		separator:  cfg.Separator,
	}
	if c.transform == nil {
		c.transform = func(record T) string {
			return DisplayText(record)
		}
	}
	if c.filter == nil {
		c.filter = func(ctx context.Context, rel Relation[T]) ([]T, error) {
			return rel.All(ctx)
		}
	}
	if c.separator == "" {
		c.separator = ", "
	}
	return c
}

func (c *RelationList[T]) Render(ctx context.Context, value any) (template.HTML, error) {
	rel, ok := value.(Relation[T])
	if !ok {
		var record T
		return "", errors.Errorf("value of type %T is not a Relation[%T]", value, record)
	}

	exists, err := rel.Exists(ctx)
	if err != nil {
		return "", errors.Wrap(err, "test relation emptiness")
	}
	if !exists {
		return Placeholder, nil
	}

	records, err := c.filter(ctx, rel)
	if err != nil {
		return "", errors.Wrap(err, "filter relation")
	}

	items := lo.Map(records, func(record T, _ int) string {
		return EscapeString(c.transform(record))
	})
	return Safe(strings.Join(items, EscapeString(c.separator))), nil
}
