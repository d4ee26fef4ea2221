package aemodel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeScale(t *testing.T) {
	tests := []struct {
		size  Size
		scale float64
	}{
		{SizeTiny, 0.5},
		{SizeSmall, 1},
		{SizeMedium, 1},
		{SizeLarge, 2},
		{SizeHuge, 3},
		{SizeGargantuan, 4},
		{Size("colossal"), 1},
		{Size(""), 1},
	}

	for _, test := range tests {
		t.Run(string(test.size), func(t *testing.T) {
			require.Equal(t, test.scale, test.size.Scale())
		})
	}
}

func TestParseSize(t *testing.T) {
	require.Equal(t, SizeLarge, ParseSize("large"))
	require.Equal(t, SizeHuge, ParseSize("  HUGE "))
	require.Equal(t, SizeMedium, ParseSize(""))
	require.Equal(t, SizeMedium, ParseSize("enormous"))
	for _, size := range AllSizes {
		require.True(t, size.Valid())
		require.Equal(t, size, ParseSize(string(size)))
	}
}
