package script

import (
	"strings"

	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/plot"
	"github.com/matzehuels/plotscript/pkg/terminal"
)

// Compile renders the document as a gnuplot script for term.
// A nil term is treated as [terminal.Default].
//
// Compile does not modify the document; compiling unchanged state twice
// yields identical scripts.
func (d *Document) Compile(term terminal.Terminal) (string, error) {
	if term == nil {
		term = terminal.Default()
	}

	plots, err := d.plotLines()
	if err != nil {
		return "", err
	}

	var lines []string
	lines = append(lines, d.preInit...)
	lines = append(lines, d.props.Lines()...)
	lines = append(lines, terminalLines(term)...)
	lines = append(lines, d.postInit...)
	lines = append(lines, plots...)
	lines = append(lines, "quit")

	return strings.Join(lines, "\n") + "\n", nil
}

func terminalLines(term terminal.Terminal) []string {
	var lines []string
	if t := term.Type(); t != "" {
		lines = append(lines, "set term "+t)
	}
	if out := term.Output(); out != "" {
		lines = append(lines, "set output '"+out+"'")
	}
	return lines
}

// plotLines renders the graphs, wrapped in a multiplot when there is more
// than one.
func (d *Document) plotLines() ([]string, error) {
	if len(d.graphs) == 1 {
		return d.graphs[0].Commands(), nil
	}

	if capacity := d.layout.Capacity(); capacity < len(d.graphs) {
		return nil, errors.New(errors.ErrCodeLayoutIndex,
			"layout sized for %d graphs, document holds %d", capacity, len(d.graphs))
	}

	header := "set multiplot"
	if d.pageTitle != "" {
		header += " title " + plot.Quote(d.pageTitle)
	}
	lines := []string{header}
	for i, g := range d.graphs {
		m, err := d.layout.Metrics(i)
		if err != nil {
			return nil, err
		}
		lines = append(lines, "set origin "+m.Origin(), "set size "+m.Size())
		lines = append(lines, g.Commands()...)
	}
	return append(lines, "unset multiplot"), nil
}
