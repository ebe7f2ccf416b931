package tabular

import (
	"context"
	"html/template"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/sunfmin/reflectutils"

	"github.com/theplant/tabular/internal/hook"
)

// CellRenderer produces the markup for one cell given the value
// resolved for the current row.
type CellRenderer interface {
	RenderCell(ctx context.Context, column Column, value any) (template.HTML, error)
}

type CellRendererFunc func(ctx context.Context, column Column, value any) (template.HTML, error)

func (f CellRendererFunc) RenderCell(ctx context.Context, column Column, value any) (template.HTML, error) {
	return f(ctx, column, value)
}

// ValueFunc resolves the value a column renders for a row, when the
// default accessor-path resolution does not apply, e.g. relation
// accessors that must be built per row.
type ValueFunc[T any] func(ctx context.Context, row T) (any, error)

// BoundColumn pairs a column with the way its value is resolved from a
// row. With a nil Value, the column's accessor path (or the bound name)
// is resolved on the row struct.
type BoundColumn[T any] struct {
	Name   string
	Column Column
	Value  ValueFunc[T]
}

// Table renders rows of T. Construct it once per table definition; it
// holds no per-render state and is safe to share across requests.
type Table[T any] struct {
	columns []BoundColumn[T]
	render  CellRenderer
}

// NewTable builds a table over the given bound columns. Hooks wrap
// cell rendering, the first hook outermost.
func NewTable[T any](columns []BoundColumn[T], hooks ...func(next CellRenderer) CellRenderer) *Table[T] {
	if len(columns) == 0 {
		panic("columns must not be empty")
	}
	for _, column := range columns {
		if column.Column == nil {
			panic("bound column without a column")
		}
	}

	var render CellRenderer = CellRendererFunc(func(ctx context.Context, column Column, value any) (template.HTML, error) {
		return column.Render(ctx, value)
	})
	hook := hook.Chain(hooks...)
	if hook != nil {
		render = hook(render)
	}
	return &Table[T]{columns: columns, render: render}
}

// Columns returns the visible bound columns in declaration order.
func (t *Table[T]) Columns() []BoundColumn[T] {
	return lo.Filter(t.columns, func(column BoundColumn[T], _ int) bool {
		visible := column.Column.Config().Visible
		return visible == nil || *visible
	})
}

func (t *Table[T]) resolveValue(ctx context.Context, column BoundColumn[T], row T) (any, error) {
	if column.Value != nil {
		return column.Value(ctx, row)
	}
	path := column.Column.Config().Accessor
	if path == "" {
		path = column.Name
	}
	value, err := reflectutils.Get(row, path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %q on %T", path, row)
	}
	return value, nil
}

func (t *Table[T]) headerText(column BoundColumn[T]) string {
	if header := column.Column.Header(); header != "" {
		return header
	}
	return Ucfirst(HumanizeFieldName(column.Name))
}

// HeaderHTML renders the <thead> section.
func (t *Table[T]) HeaderHTML() template.HTML {
	var b strings.Builder
	b.WriteString("<thead><tr>")
	for _, column := range t.Columns() {
		b.WriteString("<th>")
		b.WriteString(EscapeString(t.headerText(column)))
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>")
	return Safe(b.String())
}

// RenderRow renders one <tr> for row. The first failing cell aborts
// the row with an error naming the column.
func (t *Table[T]) RenderRow(ctx context.Context, row T) (template.HTML, error) {
	var b strings.Builder
	b.WriteString("<tr>")
	for _, column := range t.Columns() {
		value, err := t.resolveValue(ctx, column, row)
		if err != nil {
			return "", err
		}
		cell, err := t.render.RenderCell(ctx, column.Column, value)
		if err != nil {
			return "", errors.Wrapf(err, "render column %q", column.Name)
		}
		b.WriteString("<td>")
		b.WriteString(string(cell))
		b.WriteString("</td>")
	}
	b.WriteString("</tr>")
	return Safe(b.String()), nil
}

// RenderHTML renders the whole table for rows.
func (t *Table[T]) RenderHTML(ctx context.Context, rows []T) (template.HTML, error) {
	var b strings.Builder
	b.WriteString("<table>")
	b.WriteString(string(t.HeaderHTML()))
	b.WriteString("<tbody>")
	for _, row := range rows {
		tr, err := t.RenderRow(ctx, row)
		if err != nil {
			return "", err
		}
		b.WriteString(string(tr))
	}
	b.WriteString("</tbody>")
	b.WriteString(string(t.footerHTML()))
	b.WriteString("</table>")
	return Safe(b.String()), nil
}

// footerHTML renders the <tfoot> section, or nothing when no column
// carries a footer.
func (t *Table[T]) footerHTML() template.HTML {
	columns := t.Columns()
	hasFooter := lo.SomeBy(columns, func(column BoundColumn[T]) bool {
		return column.Column.Config().Footer != ""
	})
	if !hasFooter {
		return ""
	}
	var b strings.Builder
	b.WriteString("<tfoot><tr>")
	for _, column := range columns {
		b.WriteString("<td>")
		b.WriteString(EscapeString(column.Column.Config().Footer))
		b.WriteString("</td>")
	}
	b.WriteString("</tr></tfoot>")
	return Safe(b.String())
}
