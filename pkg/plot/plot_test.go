package plot

import (
	"reflect"
	"testing"

	"github.com/matzehuels/plotscript/pkg/errors"
)

func TestDefinition(t *testing.T) {
	tests := []struct {
		name string
		plot Plot
		want string
	}{
		{"bare function", Function("sin(x)"), "sin(x)"},
		{"titled function", Function("cos(x)", WithTitle("cosine")), `cos(x) title "cosine"`},
		{"styled function", Function("x**2", WithStyle(StyleLines)), "x**2 with lines"},
		{"notitle", Function("x", WithTitle("t"), WithoutTitle()), "x notitle"},
		{
			name: "full dataset",
			plot: DataSet(nil, WithUsing("1:2"), WithTitle("pts"), WithStyle(StylePoints), WithExtra("pt 7")),
			want: `'-' using 1:2 title "pts" with points pt 7`,
		},
		{"file", File("data.dat", WithUsing("1:3")), "'data.dat' using 1:3"},
		{"escaped title", Function("x", WithTitle(`a "b" \c`)), `x title "a \"b\" \\c"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.plot.Definition(); got != tt.want {
				t.Errorf("Definition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestData(t *testing.T) {
	ds := DataSet([][]float64{{1, 2}, {2.5, -3}, {1e21}})
	want := []string{"1 2", "2.5 -3", "1e+21", "e"}
	if got := ds.Data(); !reflect.DeepEqual(got, want) {
		t.Errorf("Data() = %q, want %q", got, want)
	}

	if got := DataSet(nil).Data(); !reflect.DeepEqual(got, []string{"e"}) {
		t.Errorf("empty Data() = %q", got)
	}
	if Function("x").Data() != nil {
		t.Error("function plots carry no inline data")
	}
	if File("f").Data() != nil {
		t.Error("file plots carry no inline data")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range []string{"", "lines", "points", " linespoints ", "boxes"} {
		if _, err := ParseStyle(s); err != nil {
			t.Errorf("ParseStyle(%q) error = %v", s, err)
		}
	}
	_, err := ParseStyle("sparkles")
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("ParseStyle(sparkles) error = %v, want %s", err, errors.ErrCodeInvalidStyle)
	}
}

func TestAxisCommands(t *testing.T) {
	tests := []struct {
		name string
		axis *Axis
		want []string
	}{
		{"unconfigured", NewAxis("x"), nil},
		{"label", NewAxis("y").SetLabel("speed"), []string{`set ylabel "speed"`}},
		{"range", NewAxis("x").SetRange(0, 10.5), []string{"set xrange [0:10.5]"}},
		{"half open", NewAxis("x").SetMin(-1), []string{"set xrange [-1:*]"}},
		{"upper only", NewAxis("z").SetMax(3), []string{"set zrange [*:3]"}},
		{
			name: "everything",
			axis: NewAxis("x2").SetLabel("t").SetRange(1, 100).SetLogScale(true).SetFormat("%.0f"),
			want: []string{
				`set x2label "t"`,
				"set x2range [1:100]",
				"set logscale x2",
				`set format x2 "%.0f"`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.axis.Commands(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Commands() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGraphCommands(t *testing.T) {
	g := NewGraph()
	if got := g.Commands(); len(got) != 0 {
		t.Fatalf("empty graph Commands() = %q, want none", got)
	}

	g.Axis("x").SetLabel("time")
	g.Add(Function("sin(x)", WithTitle("sine")))
	g.Add(DataSet([][]float64{{0, 1}, {1, 2}}, WithStyle(StyleLinesPoints)))
	g.Add(DataSet([][]float64{{5, 5}}))
	g.Axis("y").SetRange(0, 1)

	want := []string{
		`set xlabel "time"`,
		"set yrange [0:1]",
		`plot sin(x) title "sine", '-' with linespoints, '-'`,
		"0 1",
		"1 2",
		"e",
		"5 5",
		"e",
	}
	if got := g.Commands(); !reflect.DeepEqual(got, want) {
		t.Errorf("Commands() =\n%q\nwant\n%q", got, want)
	}
}

func TestGraphKeepsDuplicatesInOrder(t *testing.T) {
	g := NewGraph()
	p := Function("x")
	g.Add(p)
	g.Add(Function("y"))
	g.Add(p)

	if g.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", g.Len())
	}
	if got := g.Commands(); !reflect.DeepEqual(got, []string{"plot x, y, x"}) {
		t.Errorf("Commands() = %q", got)
	}
}

func TestGraphDropsNilPlots(t *testing.T) {
	g := NewGraph()
	g.Add(nil)
	g.Add((*FunctionPlot)(nil))
	g.Add((*DataSetPlot)(nil))
	g.Add((*FilePlot)(nil))
	g.Add(Function("x"))

	if g.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", g.Len())
	}
	if got := g.Commands(); !reflect.DeepEqual(got, []string{"plot x"}) {
		t.Errorf("Commands() = %q", got)
	}
}

func TestGraphAxis(t *testing.T) {
	var g Graph
	x := g.Axis("x")
	if g.Axis("x") != x {
		t.Error("Axis should return the same instance for the same name")
	}

	replacement := NewAxis("x").SetLabel("new")
	g.SetAxis(replacement)
	if g.Axis("x") != replacement {
		t.Error("SetAxis should replace the registered axis")
	}
	if len(g.Axes()) != 1 {
		t.Errorf("Axes() = %d, want 1", len(g.Axes()))
	}

	g.SetAxis(NewAxis("cb"))
	names := []string{}
	for _, a := range g.Axes() {
		names = append(names, a.Name())
	}
	if !reflect.DeepEqual(names, []string{"x", "cb"}) {
		t.Errorf("axis order = %v", names)
	}
}
