package gormtabular

import "github.com/theplant/tabular"

type Option[T any] func(*Options[T])

type Options[T any] struct {
	Detectors []ColumnDetector
	CellHooks []func(next tabular.CellRenderer) tabular.CellRenderer
}

// WithDetectors replaces the detector order TableFor consults.
func WithDetectors[T any](detectors ...ColumnDetector) Option[T] {
	return func(o *Options[T]) {
		o.Detectors = detectors
	}
}

// WithCellHooks wraps cell rendering of the generated table.
func WithCellHooks[T any](hooks ...func(next tabular.CellRenderer) tabular.CellRenderer) Option[T] {
	return func(o *Options[T]) {
		o.CellHooks = hooks
	}
}
