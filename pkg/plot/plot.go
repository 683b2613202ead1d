package plot

import (
	"strconv"
	"strings"

	"github.com/matzehuels/plotscript/pkg/errors"
)

// Plot is one data series of a graph.
type Plot interface {
	// Definition is the series' clause of the "plot" command,
	// e.g. `sin(x) title "sine" with lines`.
	Definition() string

	// Data returns the inline data block that follows the "plot" command,
	// terminated by "e", or nil for series without inline data.
	Data() []string
}

// Style is a gnuplot plotting style ("with ...").
type Style string

// Supported plotting styles.
const (
	StyleDefault      Style = ""
	StyleLines        Style = "lines"
	StylePoints       Style = "points"
	StyleLinesPoints  Style = "linespoints"
	StyleImpulses     Style = "impulses"
	StyleDots         Style = "dots"
	StyleSteps        Style = "steps"
	StyleBoxes        Style = "boxes"
	StyleErrorBars    Style = "errorbars"
	StyleFilledCurves Style = "filledcurves"
	StyleHistograms   Style = "histograms"
)

var styles = map[Style]bool{
	StyleDefault: true, StyleLines: true, StylePoints: true, StyleLinesPoints: true,
	StyleImpulses: true, StyleDots: true, StyleSteps: true, StyleBoxes: true,
	StyleErrorBars: true, StyleFilledCurves: true, StyleHistograms: true,
}

// ParseStyle validates a style name.
func ParseStyle(s string) (Style, error) {
	st := Style(strings.TrimSpace(s))
	if !styles[st] {
		return StyleDefault, errors.New(errors.ErrCodeInvalidStyle, "unknown plot style %q", s)
	}
	return st, nil
}

// Option configures the clause shared by all series.
type Option func(*options)

type options struct {
	title   string
	noTitle bool
	style   Style
	using   string
	extra   string
}

// WithTitle sets the legend entry.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
		o.noTitle = false
	}
}

// WithoutTitle suppresses the legend entry.
func WithoutTitle() Option {
	return func(o *options) {
		o.noTitle = true
		o.title = ""
	}
}

// WithStyle sets the plotting style.
func WithStyle(s Style) Option {
	return func(o *options) { o.style = s }
}

// WithUsing sets the column specification, e.g. "1:3".
func WithUsing(spec string) Option {
	return func(o *options) { o.using = spec }
}

// WithExtra appends raw modifiers such as "lw 2 lc rgb 'red'".
func WithExtra(raw string) Option {
	return func(o *options) { o.extra = raw }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// clause renders source followed by the shared modifiers in gnuplot's
// expected order: using, title, with, extras.
func (o options) clause(source string) string {
	parts := []string{source}
	if o.using != "" {
		parts = append(parts, "using "+o.using)
	}
	switch {
	case o.noTitle:
		parts = append(parts, "notitle")
	case o.title != "":
		parts = append(parts, "title "+Quote(o.title))
	}
	if o.style != StyleDefault {
		parts = append(parts, "with "+string(o.style))
	}
	if o.extra != "" {
		parts = append(parts, o.extra)
	}
	return strings.Join(parts, " ")
}

// FunctionPlot plots a gnuplot expression.
type FunctionPlot struct {
	Expr string
	opts options
}

// Function returns a series plotting expr, e.g. "sin(x)".
func Function(expr string, opts ...Option) *FunctionPlot {
	return &FunctionPlot{Expr: expr, opts: newOptions(opts)}
}

// Definition implements Plot.
func (p *FunctionPlot) Definition() string { return p.opts.clause(p.Expr) }

// Data implements Plot.
func (p *FunctionPlot) Data() []string { return nil }

// DataSetPlot plots rows of numbers sent inline after the plot command.
type DataSetPlot struct {
	Points [][]float64
	opts   options
}

// DataSet returns a series plotting points. Each point is one data row.
func DataSet(points [][]float64, opts ...Option) *DataSetPlot {
	return &DataSetPlot{Points: points, opts: newOptions(opts)}
}

// Definition implements Plot.
func (p *DataSetPlot) Definition() string { return p.opts.clause("'-'") }

// Data implements Plot.
func (p *DataSetPlot) Data() []string {
	lines := make([]string, 0, len(p.Points)+1)
	for _, row := range p.Points {
		cols := make([]string, len(row))
		for i, v := range row {
			cols[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		lines = append(lines, strings.Join(cols, " "))
	}
	return append(lines, "e")
}

// FilePlot plots a data file read by gnuplot itself.
type FilePlot struct {
	Path string
	opts options
}

// File returns a series reading path.
func File(path string, opts ...Option) *FilePlot {
	return &FilePlot{Path: path, opts: newOptions(opts)}
}

// Definition implements Plot.
func (p *FilePlot) Definition() string { return p.opts.clause("'" + p.Path + "'") }

// Data implements Plot.
func (p *FilePlot) Data() []string { return nil }

// IsNil reports whether p is nil or a nil pointer to one of this package's
// plot types.
func IsNil(p Plot) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *FunctionPlot:
		return v == nil
	case *DataSetPlot:
		return v == nil
	case *FilePlot:
		return v == nil
	}
	return false
}

// Quote renders s as a gnuplot double-quoted string.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + r.Replace(s) + `"`
}

var (
	_ Plot = (*FunctionPlot)(nil)
	_ Plot = (*DataSetPlot)(nil)
	_ Plot = (*FilePlot)(nil)
)
