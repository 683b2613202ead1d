// Package plot models the contents of one gnuplot graph.
//
// A [Graph] is an ordered list of [Plot] series plus named [Axis]
// settings. Its [Graph.Commands] renders the axis settings followed by a
// single "plot" command listing every series, and then the inline data
// blocks of the series that carry data:
//
//	g := plot.NewGraph()
//	g.Axis("x").SetLabel("time")
//	g.Add(plot.Function("sin(x)", plot.WithTitle("sine")))
//	g.Add(plot.DataSet([][]float64{{0, 1}, {1, 2}}, plot.WithStyle(plot.StyleLinesPoints)))
//
//	// set xlabel "time"
//	// plot sin(x) title "sine", '-' with linespoints
//	// 0 1
//	// 1 2
//	// e
package plot
