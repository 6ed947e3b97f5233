package raffle

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckedAdd(t *testing.T) {
	sum, err := checkedAdd(2, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(5), sum)

	_, err = checkedAdd(math.MaxUint64, 1)
	require.ErrorIs(t, err, ErrOverflow)

	sum, err = checkedAdd(math.MaxUint64, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(math.MaxUint64), sum)
}

func TestCheckedSub(t *testing.T) {
	diff, err := checkedSub(5, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(2), diff)

	_, err = checkedSub(3, 5)
	require.ErrorIs(t, err, ErrOverflow)

	diff, err = checkedSub(3, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(0), diff)
}

func TestCheckedMul(t *testing.T) {
	product, err := checkedMul(6, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(42), product)

	product, err = checkedMul(0, math.MaxUint64)
	require.NoError(t, err)
	require.Equal(t, uint64(0), product)

	_, err = checkedMul(math.MaxUint64, 2)
	require.ErrorIs(t, err, ErrOverflow)

	_, err = checkedMul(1<<33, 1<<33)
	require.ErrorIs(t, err, ErrOverflow)
}
