package cmd

import (
	"bytes"
	"testing"

	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/variants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRow(t *testing.T) {
	tests := []struct {
		in   string
		want variants.Row
	}{
		{in: "a.png", want: variants.Row{Path: "a.png"}},
		{in: "a.png|fx.nova", want: variants.Row{Path: "a.png", Effect: "fx.nova"}},
		{in: "a.png|fx.nova|large", want: variants.Row{Path: "a.png", Effect: "fx.nova", Size: "large"}},
		{in: "a.png||huge", want: variants.Row{Path: "a.png", Size: "huge"}},
		{in: "", want: variants.Row{}},
	}

	for _, test := range tests {
		assert.Equal(t, test.want, parseRow(test.in), test.in)
	}
}

func TestWriteVariantsTable(t *testing.T) {
	var buf bytes.Buffer
	writeVariantsTable(&buf, aemodel.VariantList{
		{ImagePath: "a.png", Size: aemodel.SizeTiny},
		{ImagePath: "b.png", EffectPath: "fx.nova", Size: aemodel.SizeGargantuan},
	})

	out := buf.String()
	require.Contains(t, out, "b.png")
	require.Contains(t, out, "fx.nova")
	require.Contains(t, out, "Gargantuan")
	require.Contains(t, out, "0.5")

	buf.Reset()
	writeVariantsTable(&buf, aemodel.VariantList{})
	require.Equal(t, "No variants\n", buf.String())
}
