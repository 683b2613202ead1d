package layout

import (
	"fmt"
	"strconv"
)

// Metrics is the normalized placement of one graph on the page.
// X and Y locate the lower-left corner; the page origin is the lower-left
// corner of the page and Y grows upward.
type Metrics struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns Width * Height.
func (m Metrics) Area() float64 { return m.Width * m.Height }

// Overlaps reports whether m and o share a region of positive area.
// Rectangles that merely touch along an edge do not overlap.
func (m Metrics) Overlaps(o Metrics) bool {
	const eps = 1e-9
	return m.X+eps < o.X+o.Width && o.X+eps < m.X+m.Width &&
		m.Y+eps < o.Y+o.Height && o.Y+eps < m.Y+m.Height
}

// Origin formats the lower-left corner as "x,y".
func (m Metrics) Origin() string { return FormatFloat(m.X) + "," + FormatFloat(m.Y) }

// Size formats the extent as "width,height".
func (m Metrics) Size() string { return FormatFloat(m.Width) + "," + FormatFloat(m.Height) }

func (m Metrics) String() string {
	return fmt.Sprintf("origin=%s size=%s", m.Origin(), m.Size())
}

// FormatFloat renders v with '.' as decimal point and no grouping, using the
// shortest representation that round-trips. The result never depends on the
// process locale.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
