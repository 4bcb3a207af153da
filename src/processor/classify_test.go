package processor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTierLabelBoundaries(t *testing.T) {
	cases := []struct {
		name  string
		value float64
		valid bool
		want  string
	}{
		{"negative", -5, true, LabelGood},
		{"zero", 0, true, LabelGood},
		{"below good max", 39.99, true, LabelGood},
		{"exactly good max", 40.0, true, LabelGood},
		{"just above good max", 40.0001, true, LabelMedium},
		{"mid medium", 60, true, LabelMedium},
		{"exactly medium max", 80.0, true, LabelMedium},
		{"just above medium max", 80.0001, true, LabelBad},
		{"very high", 1000, true, LabelBad},
		{"absent", 0, false, LabelUnknown},
		{"nan", math.NaN(), true, LabelUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TierLabel(tc.value, tc.valid))
		})
	}
}

// TestTierLabelColorAgreement checks that label and color are two views of
// one partition: every label maps to exactly one color across the whole
// value line, boundaries included.
func TestTierLabelColorAgreement(t *testing.T) {
	labelToColor := map[string]string{
		LabelGood:    ColorGood,
		LabelMedium:  ColorMedium,
		LabelBad:     ColorBad,
		LabelUnknown: ColorUnknown,
	}

	values := []float64{-100, -0.0001, 0, 1, 39.9999, 40, 40.0001, 50, 79.9999, 80, 80.0001, 120, 1e9}
	for _, v := range values {
		label := TierLabel(v, true)
		assert.Equal(t, labelToColor[label], TierColor(v, true), "value %v", v)
	}

	assert.Equal(t, ColorUnknown, TierColor(0, false))
	assert.Equal(t, ColorUnknown, TierColor(math.NaN(), true))
}

func TestTierColorsDistinct(t *testing.T) {
	colors := map[string]bool{ColorGood: true, ColorMedium: true, ColorBad: true, ColorUnknown: true}
	assert.Len(t, colors, 4)
}
