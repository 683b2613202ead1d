package script

import (
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/layout"
	"github.com/matzehuels/plotscript/pkg/plot"
	"github.com/matzehuels/plotscript/pkg/props"
)

// Document is the top-level plot description.
type Document struct {
	graphs    []*plot.Graph
	current   int
	pageTitle string
	preInit   []string
	postInit  []string
	props     *props.Properties
	layout    layout.Layout
}

// Option configures a Document.
type Option func(*Document)

// WithLayout replaces the default 1x1 grid. The layout is sized for the
// document's graphs as they are added.
func WithLayout(l layout.Layout) Option {
	return func(d *Document) { d.layout = l }
}

// New returns a document holding one empty graph.
func New(opts ...Option) *Document {
	d := &Document{
		graphs: []*plot.Graph{plot.NewGraph()},
		props:  props.New(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.layout == nil {
		// A 1x1 grid is always valid.
		g, _ := layout.NewGrid(1, 1)
		d.layout = g
	}
	return d
}

// NewGraph appends an empty graph and returns its index.
func (d *Document) NewGraph() (int, error) {
	return d.AddGraph(plot.NewGraph())
}

// AddGraph appends g, makes it the current graph and returns its index.
// The layout is resized to hold every graph before AddGraph returns.
func (d *Document) AddGraph(g *plot.Graph) (int, error) {
	if g == nil {
		return d.current, errors.New(errors.ErrCodeInvalidInput, "graph cannot be nil")
	}
	if err := d.layout.UpdateCapacity(len(d.graphs) + 1); err != nil {
		return d.current, err
	}
	d.graphs = append(d.graphs, g)
	d.current = len(d.graphs) - 1
	return d.current, nil
}

// AddPlot appends p to the current graph.
func (d *Document) AddPlot(p plot.Plot) error {
	return d.AddPlotTo(d.current, p)
}

// AddPlotTo appends p to the graph at index.
func (d *Document) AddPlotTo(index int, p plot.Plot) error {
	if plot.IsNil(p) {
		return errors.New(errors.ErrCodeInvalidInput, "plot cannot be nil")
	}
	g, err := d.Graph(index)
	if err != nil {
		return err
	}
	g.Add(p)
	return nil
}

// Axis returns the named axis of the current graph, creating it if needed.
func (d *Document) Axis(name string) *plot.Axis {
	return d.graphs[d.current].Axis(name)
}

// AxisOf returns the named axis of the graph at index.
func (d *Document) AxisOf(index int, name string) (*plot.Axis, error) {
	g, err := d.Graph(index)
	if err != nil {
		return nil, err
	}
	return g.Axis(name), nil
}

// Graph returns the graph at index.
func (d *Document) Graph(index int) (*plot.Graph, error) {
	if index < 0 || index >= len(d.graphs) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"graph index %d out of range [0,%d)", index, len(d.graphs))
	}
	return d.graphs[index], nil
}

// Graphs returns the graphs in order. The slice must not be modified.
func (d *Document) Graphs() []*plot.Graph { return d.graphs }

// Current returns the index of the most recently added graph.
func (d *Document) Current() int { return d.current }

// Layout returns the page layout.
func (d *Document) Layout() layout.Layout { return d.layout }

// SetPageTitle sets the multiplot page title. Empty means no title.
func (d *Document) SetPageTitle(title string) { d.pageTitle = title }

// PageTitle returns the multiplot page title.
func (d *Document) PageTitle() string { return d.pageTitle }

// PreInit appends commands emitted verbatim at the very start of the script.
func (d *Document) PreInit(cmds ...string) error {
	for _, c := range cmds {
		if err := errors.ValidateHookCommand(c); err != nil {
			return err
		}
	}
	d.preInit = append(d.preInit, cmds...)
	return nil
}

// PostInit appends commands emitted verbatim after the terminal setup and
// before the first graph.
func (d *Document) PostInit(cmds ...string) error {
	for _, c := range cmds {
		if err := errors.ValidateHookCommand(c); err != nil {
			return err
		}
	}
	d.postInit = append(d.postInit, cmds...)
	return nil
}

// PreInitCommands returns the pre-init hooks in insertion order.
func (d *Document) PreInitCommands() []string { return d.preInit }

// PostInitCommands returns the post-init hooks in insertion order.
func (d *Document) PostInitCommands() []string { return d.postInit }

// Properties returns the generic "set" property store.
func (d *Document) Properties() *props.Properties { return d.props }

// Set is shorthand for Properties().Set.
func (d *Document) Set(key, value string) error { return d.props.Set(key, value) }
