package layout

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/plotscript/pkg/errors"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"single", 1, 1, false},
		{"explicit", 2, 3, false},
		{"zero rows", 0, 1, true},
		{"zero cols", 1, 0, true},
		{"negative", -1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := NewGrid(tt.rows, tt.cols)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout))
				assert.Nil(t, g)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.rows, g.Rows())
			assert.Equal(t, tt.cols, g.Cols())
			assert.Equal(t, 1, g.Capacity())
		})
	}
}

func TestDimensions(t *testing.T) {
	tests := []struct {
		n          int
		rows, cols int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{3, 2, 2},
		{4, 2, 2},
		{5, 2, 3},
		{6, 2, 3},
		{7, 3, 3},
		{9, 3, 3},
		{10, 3, 4},
		{13, 4, 4},
		{17, 4, 5},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			rows, cols := Dimensions(tt.n, AspectWide)
			assert.Equal(t, tt.rows, rows, "rows")
			assert.Equal(t, tt.cols, cols, "cols")

			rows, cols = Dimensions(tt.n, AspectTall)
			assert.Equal(t, tt.cols, rows, "tall rows")
			assert.Equal(t, tt.rows, cols, "tall cols")
		})
	}
}

func TestDimensionsMinimal(t *testing.T) {
	for _, aspect := range []Aspect{AspectWide, AspectTall} {
		for n := 1; n <= 200; n++ {
			rows, cols := Dimensions(n, aspect)
			require.GreaterOrEqual(t, rows*cols, n, "n=%d covers", n)

			major, minor := max(rows, cols), min(rows, cols)
			// No grid with a shorter longest side can hold n slots.
			assert.Less(t, (major-1)*(major-1), n, "n=%d longest side not minimal", n)
			// With that longest side, one line fewer would not fit.
			assert.Less(t, (minor-1)*major, n, "n=%d cell count not minimal", n)

			if aspect == AspectWide {
				assert.GreaterOrEqual(t, cols, rows)
			} else {
				assert.GreaterOrEqual(t, rows, cols)
			}
		}
	}
}

func TestUpdateCapacity(t *testing.T) {
	g, err := NewGrid(1, 1)
	require.NoError(t, err)

	require.NoError(t, g.UpdateCapacity(5))
	assert.Equal(t, 5, g.Capacity())
	assert.Equal(t, 2, g.Rows())
	assert.Equal(t, 3, g.Cols())

	t.Run("idempotent", func(t *testing.T) {
		require.NoError(t, g.UpdateCapacity(5))
		assert.Equal(t, 5, g.Capacity())
		assert.Equal(t, 2, g.Rows())
		assert.Equal(t, 3, g.Cols())
	})

	t.Run("never shrinks", func(t *testing.T) {
		require.NoError(t, g.UpdateCapacity(2))
		assert.Equal(t, 5, g.Capacity())
		assert.Equal(t, 2, g.Rows())
		assert.Equal(t, 3, g.Cols())
	})

	t.Run("rejects non-positive", func(t *testing.T) {
		err := g.UpdateCapacity(0)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout))
		assert.Equal(t, 5, g.Capacity())
	})

	t.Run("explicit dimensions resize to minimal", func(t *testing.T) {
		tests := []struct {
			rows, cols int
			n          int
			wantRows   int
			wantCols   int
		}{
			{3, 3, 2, 1, 2},
			{2, 2, 1, 1, 1},
			{3, 1, 2, 1, 2},
			{1, 4, 3, 2, 2},
			{2, 2, 5, 2, 3},
		}
		for _, tt := range tests {
			explicit, err := NewGrid(tt.rows, tt.cols)
			require.NoError(t, err)
			require.NoError(t, explicit.UpdateCapacity(tt.n))
			assert.Equal(t, tt.wantRows, explicit.Rows(), "%dx%d n=%d", tt.rows, tt.cols, tt.n)
			assert.Equal(t, tt.wantCols, explicit.Cols(), "%dx%d n=%d", tt.rows, tt.cols, tt.n)
			assert.Equal(t, tt.n, explicit.Capacity())
		}
	})

	t.Run("incremental growth matches direct sizing", func(t *testing.T) {
		inc, err := NewGrid(1, 1)
		require.NoError(t, err)
		for n := 1; n <= 60; n++ {
			require.NoError(t, inc.UpdateCapacity(n))
			rows, cols := Dimensions(n, AspectWide)
			require.Equal(t, rows, inc.Rows(), "n=%d", n)
			require.Equal(t, cols, inc.Cols(), "n=%d", n)
		}
	})

	t.Run("tall aspect", func(t *testing.T) {
		tall, err := NewGrid(1, 1, WithAspect(AspectTall))
		require.NoError(t, err)
		require.NoError(t, tall.UpdateCapacity(2))
		assert.Equal(t, 2, tall.Rows())
		assert.Equal(t, 1, tall.Cols())
	})
}

func TestMetrics(t *testing.T) {
	g, err := NewGrid(1, 1)
	require.NoError(t, err)
	require.NoError(t, g.UpdateCapacity(4))

	want := []Metrics{
		{X: 0, Y: 0.5, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0.5, Width: 0.5, Height: 0.5},
		{X: 0, Y: 0, Width: 0.5, Height: 0.5},
		{X: 0.5, Y: 0, Width: 0.5, Height: 0.5},
	}
	for i, w := range want {
		m, err := g.Metrics(i)
		require.NoError(t, err)
		assert.Equal(t, w, m, "slot %d", i)
	}

	t.Run("out of range", func(t *testing.T) {
		for _, idx := range []int{-1, 4, 100} {
			_, err := g.Metrics(idx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeLayoutIndex), "index %d", idx)
		}
	})
}

func TestMetricsPartitionPage(t *testing.T) {
	for _, aspect := range []Aspect{AspectWide, AspectTall} {
		for n := 1; n <= 40; n++ {
			t.Run(fmt.Sprintf("%s/%d", aspect, n), func(t *testing.T) {
				g, err := NewGrid(1, 1, WithAspect(aspect))
				require.NoError(t, err)
				require.NoError(t, g.UpdateCapacity(n))

				cells := make([]Metrics, g.Cells())
				var area float64
				for i := range cells {
					m, err := g.Metrics(i)
					require.NoError(t, err)
					assert.GreaterOrEqual(t, m.X, 0.0)
					assert.GreaterOrEqual(t, m.Y, -1e-12)
					assert.LessOrEqual(t, m.X+m.Width, 1+1e-9)
					assert.LessOrEqual(t, m.Y+m.Height, 1+1e-9)
					cells[i] = m
					area += m.Area()
				}
				assert.InDelta(t, 1.0, area, 1e-9)

				for i := range cells {
					for j := i + 1; j < len(cells); j++ {
						assert.False(t, cells[i].Overlaps(cells[j]), "slots %d and %d overlap", i, j)
					}
				}
			})
		}
	}
}

func TestMetricsRowZeroIsTop(t *testing.T) {
	g, err := NewGrid(3, 1)
	require.NoError(t, err)

	top, err := g.Metrics(0)
	require.NoError(t, err)
	bottom, err := g.Metrics(2)
	require.NoError(t, err)

	assert.Greater(t, top.Y, bottom.Y)
	assert.InDelta(t, 0.0, bottom.Y, 1e-12)
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{0.25, "0.25"},
		{1.0 / 3, "0.3333333333333333"},
		{1234567.5, "1234567.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFloat(tt.in))
	}

	m := Metrics{X: 0.5, Y: 0, Width: 0.5, Height: 1}
	assert.Equal(t, "0.5,0", m.Origin())
	assert.Equal(t, "0.5,1", m.Size())
}

func TestParseAspect(t *testing.T) {
	a, err := ParseAspect("")
	require.NoError(t, err)
	assert.Equal(t, AspectWide, a)

	a, err = ParseAspect("tall")
	require.NoError(t, err)
	assert.Equal(t, AspectTall, a)

	_, err = ParseAspect("diagonal")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidLayout))
}
