package plot

import "strings"

// Graph is one plot area: ordered series plus named axes.
type Graph struct {
	plots []Plot
	axes  []*Axis
	index map[string]*Axis
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{index: make(map[string]*Axis)}
}

// Add appends p. Order is preserved in the output and duplicates are kept.
// Nil plots, including typed nil pointers, are dropped.
func (g *Graph) Add(p Plot) {
	if IsNil(p) {
		return
	}
	g.plots = append(g.plots, p)
}

// Plots returns the series in insertion order.
func (g *Graph) Plots() []Plot { return g.plots }

// Len returns the number of series.
func (g *Graph) Len() int { return len(g.plots) }

// Axis returns the axis called name, creating it on first access.
func (g *Graph) Axis(name string) *Axis {
	if g.index == nil {
		g.index = make(map[string]*Axis)
	}
	if a, ok := g.index[name]; ok {
		return a
	}
	a := NewAxis(name)
	g.index[name] = a
	g.axes = append(g.axes, a)
	return a
}

// SetAxis replaces the axis registered under a.Name().
func (g *Graph) SetAxis(a *Axis) {
	if g.index == nil {
		g.index = make(map[string]*Axis)
	}
	if _, ok := g.index[a.name]; ok {
		for i, old := range g.axes {
			if old.name == a.name {
				g.axes[i] = a
			}
		}
	} else {
		g.axes = append(g.axes, a)
	}
	g.index[a.name] = a
}

// Axes returns the axes in creation order.
func (g *Graph) Axes() []*Axis { return g.axes }

// Commands renders the graph: axis settings in creation order, then one
// "plot" command and the inline data of each series in insertion order.
func (g *Graph) Commands() []string {
	var cmds []string
	for _, a := range g.axes {
		cmds = append(cmds, a.Commands()...)
	}
	if len(g.plots) == 0 {
		return cmds
	}

	defs := make([]string, len(g.plots))
	for i, p := range g.plots {
		defs[i] = p.Definition()
	}
	cmds = append(cmds, "plot "+strings.Join(defs, ", "))
	for _, p := range g.plots {
		cmds = append(cmds, p.Data()...)
	}
	return cmds
}
