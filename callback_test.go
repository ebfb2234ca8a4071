package dochooks_test

import (
	"testing"

	"github.com/iVampireSP/dochooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	total int
}

func (c *counter) Add(n int) int {
	c.total += n
	return c.total
}

func (c *counter) Sum(base int64, ns ...int) int64 {
	for _, n := range ns {
		base += int64(n)
	}
	return base
}

func (c *counter) Label(m map[string]string) int {
	return len(m)
}

func TestCallback_Call(t *testing.T) {
	c := &counter{}
	cb, err := dochooks.NewCallback(c, "Add")
	require.NoError(t, err)
	assert.Equal(t, 1, cb.ArgCount())

	out, err := cb.Call(3)
	require.NoError(t, err)
	assert.Equal(t, []any{3}, out)
	assert.Equal(t, 3, c.total)
}

func TestCallback_Conversions(t *testing.T) {
	c := &counter{}

	sum, err := dochooks.NewCallback(c, "Sum")
	require.NoError(t, err)
	out, err := sum.Call(int32(1), 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(6)}, out)

	out, err = sum.Call(10)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(10)}, out)

	label, err := dochooks.NewCallback(c, "Label")
	require.NoError(t, err)
	out, err = label.Call(nil)
	require.NoError(t, err)
	assert.Equal(t, []any{0}, out)

	_, err = label.Call("not a map")
	assert.Error(t, err)
}

func TestCallback_ArgCount(t *testing.T) {
	cb, err := dochooks.NewCallback(&counter{}, "Add")
	require.NoError(t, err)

	_, err = cb.Call()
	assert.ErrorIs(t, err, dochooks.ErrArgCount)
	_, err = cb.Call(1, 2)
	assert.ErrorIs(t, err, dochooks.ErrArgCount)

	sum, err := dochooks.NewCallback(&counter{}, "Sum")
	require.NoError(t, err)
	_, err = sum.Call()
	assert.ErrorIs(t, err, dochooks.ErrArgCount)
}

func TestNewCallback_UnknownMethod(t *testing.T) {
	_, err := dochooks.NewCallback(&counter{}, "Missing")
	assert.ErrorIs(t, err, dochooks.ErrUnknownMethod)

	var zero dochooks.Callback
	_, err = zero.Call()
	assert.ErrorIs(t, err, dochooks.ErrUnknownMethod)
}

func TestCallback_String(t *testing.T) {
	cb, err := dochooks.NewCallback(&counter{}, "Add")
	require.NoError(t, err)
	assert.Equal(t, dochooks.ClassName(&counter{})+".Add", cb.String())
}
