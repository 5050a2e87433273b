package iter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceIterator struct {
	vals []int
	idx  int
}

func (it *sliceIterator) Next(ctx context.Context, x *int) error {
	if it.idx >= len(it.vals) {
		return EOS()
	}
	*x = it.vals[it.idx]
	it.idx++
	return nil
}

func TestForEachVisitsEveryElement(t *testing.T) {
	it := &sliceIterator{vals: []int{1, 2, 3}}
	var got []int
	err := ForEach[int](context.Background(), it, func(x *int) error {
		got = append(got, *x)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 3}, got)
}

func TestForEachPropagatesCallbackError(t *testing.T) {
	it := &sliceIterator{vals: []int{1, 2, 3}}
	boom := assert.AnError
	err := ForEach[int](context.Background(), it, func(x *int) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestCollectStopsAtLimitWithoutDrainingRest(t *testing.T) {
	it := &sliceIterator{vals: []int{1, 2, 3, 4, 5}}
	got, err := Collect[int](context.Background(), it, 2)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
	require.Equal(t, 2, it.idx, "Collect must not pull more than limit elements")
}

func TestCollectShortStreamReturnsAllElements(t *testing.T) {
	it := &sliceIterator{vals: []int{1, 2}}
	got, err := Collect[int](context.Background(), it, 10)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2}, got)
}

func TestIsEOS(t *testing.T) {
	require.True(t, IsEOS(EOS()))
	require.False(t, IsEOS(assert.AnError))
}
