package tabular

import (
	"context"
	"html/template"

	"github.com/samber/lo"
)

// Column is the contract the table framework renders cells through.
// Render receives the value resolved for the current row; the returned
// markup is embedded without further escaping, so implementations must
// escape everything they did not produce themselves.
type Column interface {
	Header() string
	Config() *ColumnConfig
	Render(ctx context.Context, value any) (template.HTML, error)
}

// ColumnConfig carries the presentation options shared by all column
// types. Orderable and Visible are tri-state: nil means "not set",
// letting column constructors apply their own defaults without
// clobbering caller intent.
type ColumnConfig struct {
	VerboseName string
	Accessor    string
	Orderable   *bool
	Visible     *bool
	Footer      string
}

type ColumnOption func(*ColumnConfig)

// WithVerboseName sets the column header text.
func WithVerboseName(name string) ColumnOption {
	return func(c *ColumnConfig) {
		c.VerboseName = name
	}
}

// WithAccessor sets the dotted path used to resolve the column's value
// from a row, e.g. "Profile.Email". Defaults to the bound column name.
func WithAccessor(path string) ColumnOption {
	return func(c *ColumnConfig) {
		c.Accessor = path
	}
}

func WithOrderable(orderable bool) ColumnOption {
	return func(c *ColumnConfig) {
		c.Orderable = lo.ToPtr(orderable)
	}
}

func WithVisible(visible bool) ColumnOption {
	return func(c *ColumnConfig) {
		c.Visible = lo.ToPtr(visible)
	}
}

func WithFooter(footer string) ColumnOption {
	return func(c *ColumnConfig) {
		c.Footer = footer
	}
}

// BaseColumn implements the configuration half of Column. Concrete
// column types embed it and provide Render.
type BaseColumn struct {
	config ColumnConfig
}

func NewBaseColumn(opts ...ColumnOption) BaseColumn {
	var config ColumnConfig
	for _, opt := range opts {
		opt(&config)
	}
	return BaseColumn{config: config}
}

func (c *BaseColumn) Header() string {
	return c.config.VerboseName
}

func (c *BaseColumn) Config() *ColumnConfig {
	return &c.config
}

// Orderable reports whether the column participates in ordering,
// defaulting to true when not configured.
func (c *BaseColumn) Orderable() bool {
	if c.config.Orderable == nil {
		return true
	}
	return *c.config.Orderable
}

// Visible reports whether the column is rendered, defaulting to true.
func (c *BaseColumn) Visible() bool {
	if c.config.Visible == nil {
		return true
	}
	return *c.config.Visible
}
