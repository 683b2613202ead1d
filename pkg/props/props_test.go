package props

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/plotscript/pkg/errors"
)

func TestLinesInsertionOrder(t *testing.T) {
	p := New()
	require.NoError(t, p.Set("grid", ""))
	require.NoError(t, p.Set("key", "left top"))
	require.NoError(t, p.Unset("border"))
	require.NoError(t, p.Set("xtics", "0.5"))

	assert.Equal(t, []string{
		"set grid",
		"set key left top",
		"unset border",
		"set xtics 0.5",
	}, p.Lines())
	assert.Equal(t, []string{"grid", "key", "border", "xtics"}, p.Keys())
}

func TestSetReplacesInPlace(t *testing.T) {
	var p Properties
	require.NoError(t, p.Set("key", "left"))
	require.NoError(t, p.Set("grid", ""))
	require.NoError(t, p.Set("key", "right"))

	assert.Equal(t, []string{"set key right", "set grid"}, p.Lines())
	v, ok := p.Get("key")
	assert.True(t, ok)
	assert.Equal(t, "right", v)

	require.NoError(t, p.Unset("key"))
	_, ok = p.Get("key")
	assert.False(t, ok)
	assert.Equal(t, []string{"unset key", "set grid"}, p.Lines())
}

func TestDelete(t *testing.T) {
	p := New()
	for _, k := range []string{"a", "b", "c"} {
		require.NoError(t, p.Set(k, k))
	}
	p.Delete("b")
	p.Delete("missing")

	assert.Equal(t, 2, p.Len())
	assert.Equal(t, []string{"set a a", "set c c"}, p.Lines())

	require.NoError(t, p.Set("c", "z"))
	assert.Equal(t, []string{"set a a", "set c z"}, p.Lines())
}

func TestInvalidKey(t *testing.T) {
	p := New()
	err := p.Set("key left", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.Equal(t, 0, p.Len())

	assert.Error(t, p.Unset(""))
}

func TestEmpty(t *testing.T) {
	var p Properties
	assert.Empty(t, p.Lines())
	_, ok := p.Get("anything")
	assert.False(t, ok)
}
