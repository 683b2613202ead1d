package layout

import (
	"math"

	"github.com/matzehuels/plotscript/pkg/errors"
)

// Aspect selects which side of a non-square grid gets the extra cells.
type Aspect int

const (
	// AspectWide prefers cols >= rows.
	AspectWide Aspect = iota
	// AspectTall prefers rows >= cols.
	AspectTall
)

func (a Aspect) String() string {
	if a == AspectTall {
		return "tall"
	}
	return "wide"
}

// ParseAspect maps "wide" and "tall" to an Aspect. The empty string is wide.
func ParseAspect(s string) (Aspect, error) {
	switch s {
	case "", "wide":
		return AspectWide, nil
	case "tall":
		return AspectTall, nil
	}
	return AspectWide, errors.New(errors.ErrCodeInvalidLayout, "invalid aspect %q (must be 'wide' or 'tall')", s)
}

// GridOption configures a Grid.
type GridOption func(*Grid)

// WithAspect sets the aspect preference used by UpdateCapacity.
func WithAspect(a Aspect) GridOption {
	return func(g *Grid) { g.aspect = a }
}

// Grid is a row-major uniform grid layout.
//
// Slot i lives in row i/cols and column i%cols. Row 0 is the topmost band of
// the page. Grid is not safe for concurrent mutation.
type Grid struct {
	rows     int
	cols     int
	capacity int
	aspect   Aspect
}

// NewGrid returns a rows x cols grid sized for one slot. A single-graph
// document uses 1x1. The dimensions hold until the first UpdateCapacity.
// Non-positive dimensions are an ErrCodeInvalidLayout error.
func NewGrid(rows, cols int, opts ...GridOption) (*Grid, error) {
	if rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "grid rows must be positive, got %d", rows)
	}
	if cols < 1 {
		return nil, errors.New(errors.ErrCodeInvalidLayout, "grid cols must be positive, got %d", cols)
	}
	g := &Grid{rows: rows, cols: cols, capacity: 1}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Cells returns rows * cols.
func (g *Grid) Cells() int { return g.rows * g.cols }

// Capacity returns the slot count the grid was last sized for.
func (g *Grid) Capacity() int { return g.capacity }

// Aspect returns the aspect preference.
func (g *Grid) Aspect() Aspect { return g.aspect }

// UpdateCapacity resizes the grid to the smallest one holding
// max(n, Capacity()) slots. Explicit NewGrid dimensions only seed the grid
// until the first call. Capacity never shrinks.
func (g *Grid) UpdateCapacity(n int) error {
	if n < 1 {
		return errors.New(errors.ErrCodeInvalidLayout, "grid capacity must be positive, got %d", n)
	}
	g.capacity = max(n, g.capacity)
	g.rows, g.cols = Dimensions(g.capacity, g.aspect)
	return nil
}

// Metrics returns the rectangle of slot index.
func (g *Grid) Metrics(index int) (Metrics, error) {
	if index < 0 || index >= g.Cells() {
		return Metrics{}, errors.New(errors.ErrCodeLayoutIndex,
			"slot %d outside %dx%d grid", index, g.rows, g.cols)
	}
	row, col := index/g.cols, index%g.cols
	width := 1 / float64(g.cols)
	height := 1 / float64(g.rows)
	return Metrics{
		X:      float64(col) * width,
		Y:      1 - float64(row+1)*height,
		Width:  width,
		Height: height,
	}, nil
}

// Dimensions returns the rows and columns of the grid used for n slots.
// The longer side is ceil(sqrt(n)); the shorter side is the fewest lines
// that fit n slots. n must be positive.
func Dimensions(n int, aspect Aspect) (rows, cols int) {
	major := int(math.Ceil(math.Sqrt(float64(n))))
	// Guard against sqrt rounding for large perfect squares.
	for major > 1 && (major-1)*(major-1) >= n {
		major--
	}
	for major*major < n {
		major++
	}
	minor := (n + major - 1) / major
	if aspect == AspectTall {
		return major, minor
	}
	return minor, major
}
