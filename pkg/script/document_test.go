package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/plotscript/pkg/errors"
	"github.com/matzehuels/plotscript/pkg/layout"
	"github.com/matzehuels/plotscript/pkg/plot"
)

func TestNewDocument(t *testing.T) {
	d := New()
	assert.Len(t, d.Graphs(), 1)
	assert.Equal(t, 0, d.Current())
	assert.Equal(t, "", d.PageTitle())
	assert.Equal(t, 1, d.Layout().Capacity())
	assert.Empty(t, d.PreInitCommands())
	assert.Empty(t, d.PostInitCommands())
	assert.Equal(t, 0, d.Properties().Len())
}

func TestAddGraphSyncsLayout(t *testing.T) {
	d := New()
	for k := 1; k <= 7; k++ {
		idx, err := d.AddGraph(plot.NewGraph())
		require.NoError(t, err)
		assert.Equal(t, k, idx)
		assert.Equal(t, k, d.Current())
		assert.Equal(t, k+1, d.Layout().Capacity())
		assert.Len(t, d.Graphs(), k+1)
	}
}

func TestAddGraphNil(t *testing.T) {
	d := New()
	_, err := d.AddGraph(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Len(t, d.Graphs(), 1)
	assert.Equal(t, 1, d.Layout().Capacity())
}

func TestAddGraphCustomLayout(t *testing.T) {
	grid, err := layout.NewGrid(1, 1, layout.WithAspect(layout.AspectTall))
	require.NoError(t, err)

	d := New(WithLayout(grid))
	_, err = d.NewGraph()
	require.NoError(t, err)
	assert.Equal(t, 2, grid.Rows())
	assert.Equal(t, 1, grid.Cols())
}

func TestOversizedGridShrinksToFit(t *testing.T) {
	grid, err := layout.NewGrid(3, 3)
	require.NoError(t, err)

	d := New(WithLayout(grid))
	_, err = d.NewGraph()
	require.NoError(t, err)

	out, err := d.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, "set multiplot\n"+
		"set origin 0,0\nset size 0.5,1\n"+
		"set origin 0.5,0\nset size 0.5,1\n"+
		"unset multiplot\nquit\n", out)
}

func TestAddPlotTargetsCurrentGraph(t *testing.T) {
	d := New()
	require.NoError(t, d.AddPlot(plot.Function("a")))
	_, err := d.NewGraph()
	require.NoError(t, err)
	require.NoError(t, d.AddPlot(plot.Function("b")))

	assert.Equal(t, 1, d.Graphs()[0].Len())
	assert.Equal(t, 1, d.Graphs()[1].Len())

	require.NoError(t, d.AddPlotTo(0, plot.Function("c")))
	assert.Equal(t, 2, d.Graphs()[0].Len())

	err = d.AddPlotTo(5, plot.Function("d"))
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))

	err = d.AddPlot(nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestNilPlots(t *testing.T) {
	t.Run("typed nil rejected", func(t *testing.T) {
		d := New()
		for _, p := range []plot.Plot{
			(*plot.FunctionPlot)(nil),
			(*plot.DataSetPlot)(nil),
			(*plot.FilePlot)(nil),
		} {
			err := d.AddPlot(p)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "%T", p)
		}
		assert.Equal(t, 0, d.Graphs()[0].Len())

		out, err := d.Compile(nil)
		require.NoError(t, err)
		assert.Equal(t, "quit\n", out)
	})

	t.Run("graph built outside the document", func(t *testing.T) {
		g := plot.NewGraph()
		g.Add(nil)
		g.Add((*plot.FunctionPlot)(nil))
		g.Add(plot.Function("x"))

		d := New()
		_, err := d.AddGraph(g)
		require.NoError(t, err)

		out, err := d.Compile(nil)
		require.NoError(t, err)
		assert.Contains(t, out, "\nplot x\n")
	})
}

func TestAxis(t *testing.T) {
	d := New()
	x := d.Axis("x")
	assert.Same(t, x, d.Axis("x"))

	_, err := d.NewGraph()
	require.NoError(t, err)
	assert.NotSame(t, x, d.Axis("x"))

	first, err := d.AxisOf(0, "x")
	require.NoError(t, err)
	assert.Same(t, x, first)

	_, err = d.AxisOf(-1, "x")
	assert.Error(t, err)
}

func TestHooksRejectMultiline(t *testing.T) {
	d := New()
	err := d.PreInit("set grid", "plot x\nquit")
	require.Error(t, err)
	assert.Empty(t, d.PreInitCommands())

	require.Error(t, d.PostInit("set key\r"))
	assert.Empty(t, d.PostInitCommands())
}

func TestEmptyHookIsBlankLine(t *testing.T) {
	d := New()
	require.NoError(t, d.PreInit("reset", ""))

	out, err := d.Compile(nil)
	require.NoError(t, err)
	assert.Equal(t, "reset\n\nquit\n", out)
}
