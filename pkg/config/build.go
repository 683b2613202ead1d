package config

import (
	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/layout"
	"github.com/matzehuels/plotscript/pkg/plot"
	"github.com/matzehuels/plotscript/pkg/script"
)

// Build validates d and assembles the document it describes.
// The first graph spec fills the document's initial graph.
func (d *Description) Build() (*script.Document, error) {
	if err := d.Terminal.Validate(); err != nil {
		return nil, err
	}

	grid, err := d.Layout.grid()
	if err != nil {
		return nil, err
	}
	doc := script.New(script.WithLayout(grid))
	doc.SetPageTitle(d.Title)

	if err := doc.PreInit(d.PreInit...); err != nil {
		return nil, err
	}
	if err := doc.PostInit(d.PostInit...); err != nil {
		return nil, err
	}
	for _, p := range d.Set {
		if err := doc.Set(p.Key, p.Value); err != nil {
			return nil, err
		}
	}
	for _, key := range d.Unset {
		if err := doc.Properties().Unset(key); err != nil {
			return nil, err
		}
	}

	for i, gs := range d.Graphs {
		idx := 0
		if i > 0 {
			if idx, err = doc.NewGraph(); err != nil {
				return nil, err
			}
		}
		if err := gs.apply(doc, idx); err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "graph %d", i)
		}
	}
	return doc, nil
}

func (l LayoutSpec) grid() (*layout.Grid, error) {
	aspect, err := layout.ParseAspect(l.Aspect)
	if err != nil {
		return nil, err
	}
	return layout.NewGrid(1, 1, layout.WithAspect(aspect))
}

func (g GraphSpec) apply(doc *script.Document, idx int) error {
	for _, as := range g.Axes {
		if as.Name == "" {
			return errors.New(errors.ErrCodeInvalidInput, "axis name cannot be empty")
		}
		a, err := doc.AxisOf(idx, as.Name)
		if err != nil {
			return err
		}
		as.applyTo(a)
	}
	for j, ps := range g.Plots {
		p, err := ps.build()
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "plot %d", j)
		}
		if err := doc.AddPlotTo(idx, p); err != nil {
			return err
		}
	}
	return nil
}

func (as AxisSpec) applyTo(a *plot.Axis) {
	if as.Label != "" {
		a.SetLabel(as.Label)
	}
	if as.Min != nil {
		a.SetMin(*as.Min)
	}
	if as.Max != nil {
		a.SetMax(*as.Max)
	}
	if as.Log {
		a.SetLogScale(true)
	}
	if as.Format != "" {
		a.SetFormat(as.Format)
	}
}

func (ps PlotSpec) build() (plot.Plot, error) {
	style, err := plot.ParseStyle(ps.Style)
	if err != nil {
		return nil, err
	}
	opts := []plot.Option{plot.WithStyle(style), plot.WithUsing(ps.Using), plot.WithExtra(ps.Extra)}
	switch {
	case ps.NoTitle:
		opts = append(opts, plot.WithoutTitle())
	case ps.Title != "":
		opts = append(opts, plot.WithTitle(ps.Title))
	}

	sources := 0
	for _, set := range []bool{ps.Function != "", ps.File != "", ps.Data != nil} {
		if set {
			sources++
		}
	}
	if sources != 1 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "plot needs exactly one of function, file or data (got %d)", sources)
	}

	switch {
	case ps.Function != "":
		return plot.Function(ps.Function, opts...), nil
	case ps.File != "":
		if err := errors.ValidatePath(ps.File); err != nil {
			return nil, err
		}
		return plot.File(ps.File, opts...), nil
	default:
		return plot.DataSet(ps.Data, opts...), nil
	}
}
