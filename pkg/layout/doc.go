// Package layout places graphs on a shared page.
//
// A page is the unit square. A [Layout] hands out one [Metrics] rectangle per
// graph slot; the multiplot compiler turns each rectangle into a pair of
// "set origin" and "set size" commands.
//
// # Grid
//
// [Grid] is the only strategy. It arranges slots row-major in a uniform grid
// whose rectangles tile the page with no gaps and no overlaps:
//
//	g, _ := layout.NewGrid(1, 1)
//	_ = g.UpdateCapacity(3) // 2 rows x 2 columns
//	m, _ := g.Metrics(2)    // {X: 0, Y: 0, Width: 0.5, Height: 0.5}
//
// Grid sizing picks the most square grid that holds the requested capacity:
// the longer side is ceil(sqrt(n)) and the shorter side is the fewest lines
// that still fit n slots. [AspectWide] (the default) puts the longer side on
// the columns, [AspectTall] on the rows. A grid built with explicit
// dimensions keeps them while they still hold every slot.
package layout
