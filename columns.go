package tabular

import (
	"context"
	"html/template"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

// TextColumn renders the resolved value as escaped text. It is the
// fallback column type for fields nothing more specific claims.
type TextColumn struct {
	BaseColumn
}

func NewText(opts ...ColumnOption) *TextColumn {
	return &TextColumn{BaseColumn: NewBaseColumn(opts...)}
}

func (c *TextColumn) Render(_ context.Context, value any) (template.HTML, error) {
	text := DisplayText(value)
	if text == "" {
		return Placeholder, nil
	}
	return Safe(EscapeString(text)), nil
}

// BoolColumn renders booleans as check marks.
type BoolColumn struct {
	BaseColumn
}

func NewBool(opts ...ColumnOption) *BoolColumn {
	return &BoolColumn{BaseColumn: NewBaseColumn(opts...)}
}

func (c *BoolColumn) Render(_ context.Context, value any) (template.HTML, error) {
	var b bool
	switch v := value.(type) {
	case bool:
		b = v
	case *bool:
		if v == nil {
			return Placeholder, nil
		}
		b = *v
	default:
		return "", errors.Errorf("value of type %T is not a bool", value)
	}
	if b {
		return `<span class="true">✔</span>`, nil
	}
	return `<span class="false">✘</span>`, nil
}

// Sorted keys keep cell output stable across renders.
var jsoniterForCells = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// JSONColumn renders the resolved value as its JSON encoding inside a
// <pre> block.
type JSONColumn struct {
	BaseColumn
}

func NewJSON(opts ...ColumnOption) *JSONColumn {
	return &JSONColumn{BaseColumn: NewBaseColumn(opts...)}
}

func (c *JSONColumn) Render(_ context.Context, value any) (template.HTML, error) {
	data, err := jsoniterForCells.MarshalToString(value)
	if err != nil {
		return "", errors.Wrap(err, "marshal cell value")
	}
	return Safe("<pre>" + EscapeString(data) + "</pre>"), nil
}
