package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTotal(t *testing.T) {
	testCases := []struct {
		name      string
		unitPrice int64
		quantity  int32
		expected  int64
		err       error
	}{
		{name: "small line", unitPrice: 500, quantity: 2, expected: 1000},
		{name: "largest price at the quantity cap", unitPrice: 9_999_999_999, quantity: 1000, expected: 9_999_999_999_000},
		{name: "largest price at max int32 overflows", unitPrice: 9_999_999_999, quantity: math.MaxInt32, err: ErrOverflow},
		{name: "max int64 price times two overflows", unitPrice: math.MaxInt64, quantity: 2, err: ErrOverflow},
		{name: "max int64 price times one fits", unitPrice: math.MaxInt64, quantity: 1, expected: math.MaxInt64},
		{name: "negative delta", unitPrice: -300, quantity: 3, expected: -900},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := LineTotal(tc.unitPrice, tc.quantity)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSum(t *testing.T) {
	testCases := []struct {
		name     string
		amounts  []int64
		expected int64
		err      error
	}{
		{name: "empty", expected: 0},
		{name: "lines", amounts: []int64{1000, 300}, expected: 1300},
		{name: "reaches max int64", amounts: []int64{math.MaxInt64 - 1, 1}, expected: math.MaxInt64},
		{name: "past max int64", amounts: []int64{math.MaxInt64, 1}, err: ErrOverflow},
		{name: "past min int64", amounts: []int64{math.MinInt64, -1}, err: ErrOverflow},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Sum(tc.amounts...)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
