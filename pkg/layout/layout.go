package layout

// Layout assigns page rectangles to graph slots.
//
// Implementations must keep Metrics valid for every index below Capacity
// once UpdateCapacity has returned.
type Layout interface {
	// Metrics returns the rectangle for slot index.
	// An index outside the layout is an ErrCodeLayoutIndex error.
	Metrics(index int) (Metrics, error)

	// UpdateCapacity makes room for n slots. It never shrinks the layout
	// and calling it twice with the same n is a no-op.
	UpdateCapacity(n int) error

	// Capacity returns the number of slots the layout was last sized for.
	Capacity() int
}

// Ensure Grid implements Layout.
var _ Layout = (*Grid)(nil)
