// classify.go
package processor

import "math"

// EAQI tier thresholds. The upper bound of each band is inclusive.
const (
	GoodMax   = 40.0
	MediumMax = 80.0
)

// Tier labels.
const (
	LabelGood    = "Good"
	LabelMedium  = "Medium"
	LabelBad     = "Bad"
	LabelUnknown = "Unknown"
)

// Marker fill colors, one per tier, matching the dashboard legend.
const (
	ColorGood    = "#0078FF"
	ColorMedium  = "#FFA500"
	ColorBad     = "#DC143C"
	ColorUnknown = "#A0A0A0"
)

type tier int

const (
	tierUnknown tier = iota
	tierGood
	tierMedium
	tierBad
)

// classify is the single partition of the value line both TierLabel and
// TierColor are derived from, so the two can never disagree.
func classify(v float64, valid bool) tier {
	switch {
	case !valid || math.IsNaN(v):
		return tierUnknown
	case v <= GoodMax:
		return tierGood
	case v <= MediumMax:
		return tierMedium
	default:
		return tierBad
	}
}

// TierLabel returns the qualitative tier for an EAQI value.
// valid=false marks an absent measurement.
func TierLabel(v float64, valid bool) string {
	switch classify(v, valid) {
	case tierGood:
		return LabelGood
	case tierMedium:
		return LabelMedium
	case tierBad:
		return LabelBad
	default:
		return LabelUnknown
	}
}

// TierColor returns the legend color for an EAQI value.
func TierColor(v float64, valid bool) string {
	switch classify(v, valid) {
	case tierGood:
		return ColorGood
	case tierMedium:
		return ColorMedium
	case tierBad:
		return ColorBad
	default:
		return ColorUnknown
	}
}
