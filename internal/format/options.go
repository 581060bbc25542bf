package format

import (
	"svfmt/internal/layout"
	"svfmt/internal/trace"
)

const (
	DefaultIndentWidth = 4
	maxIndentWidth     = 16
)

type Options struct {
	IndentWidth  int           // 0 selects DefaultIndentWidth
	UseTabs      bool          // one tab per level; IndentWidth still sets the tab's width for wrapping
	MaxLineWidth int           // 0 disables width-driven wrapping
	Table        *layout.Table // nil selects layout.Verilog()
	Tracer       trace.Tracer
	TraceParent  uint64 // span the render pass nests under
}

// Validate checks the options before any rendering starts.
func (o Options) Validate() error {
	switch {
	case o.IndentWidth < 0 || o.IndentWidth > maxIndentWidth:
		return &ConfigError{Field: "indent width", Value: o.IndentWidth, Msg: "must be between 1 and 16"}
	case o.MaxLineWidth < 0:
		return &ConfigError{Field: "max line width", Value: o.MaxLineWidth, Msg: "must not be negative"}
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.Table == nil {
		o.Table = layout.Verilog()
	}
	if o.Tracer == nil {
		o.Tracer = trace.Nop
	}
	return o
}
