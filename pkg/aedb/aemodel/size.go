package aemodel

import "strings"

// Size is the display size category of a variant. Each category maps to a
// fixed scale factor used for both the token's width/height and the scale of
// any effect played when switching to the variant.
type Size string

const (
	SizeTiny       Size = "tiny"
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeHuge       Size = "huge"
	SizeGargantuan Size = "gargantuan"
)

var sizeScales = map[Size]float64{
	SizeTiny:       0.5,
	SizeSmall:      1,
	SizeMedium:     1,
	SizeLarge:      2,
	SizeHuge:       3,
	SizeGargantuan: 4,
}

// AllSizes lists the categories from smallest to largest.
var AllSizes = []Size{SizeTiny, SizeSmall, SizeMedium, SizeLarge, SizeHuge, SizeGargantuan}

// ParseSize normalizes s to a known Size. Blank or unknown values become SizeMedium.
func ParseSize(s string) Size {
	size := Size(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := sizeScales[size]; !ok {
		return SizeMedium
	}

	return size
}

func (s Size) Valid() bool {
	_, ok := sizeScales[s]
	return ok
}

// Scale returns the scale factor for s. Unknown sizes scale like SizeMedium.
func (s Size) Scale() float64 {
	scale, ok := sizeScales[s]
	if !ok {
		return sizeScales[SizeMedium]
	}

	return scale
}
