package heatmap

import "sort"

// minSpanWatts keeps the autoscaled range from collapsing when every
// outlet draws roughly the same power.
const minSpanWatts = 10.0

// offDesaturation is how far OFF tiles are pulled toward light grey.
const offDesaturation = 0.65

// RGB is a 24-bit colour.
type RGB struct {
	R, G, B uint8
}

// unknownGrey is the tile colour when no power reading is available.
var unknownGrey = RGB{220, 220, 220}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// HeatColor maps a power reading onto the blue/yellow/red gradient.
// t=0 is blue, t=0.5 yellow, t=1 red, interpolated linearly within
// each half. OFF tiles are desaturated toward light grey so the grid
// still shows which outlets would be hot if switched back on.
func HeatColor(powerW *float64, pMin, pMax float64, off bool) RGB {
	if powerW == nil {
		return unknownGrey
	}

	t := 0.0
	if pMax > pMin {
		t = (*powerW - pMin) / (pMax - pMin)
	}
	t = clamp(t, 0, 1)

	var r, g, b float64
	if t <= 0.5 {
		tt := t / 0.5
		r = lerp(40, 255, tt)
		g = lerp(90, 235, tt)
		b = lerp(220, 80, tt)
	} else {
		tt := (t - 0.5) / 0.5
		r = lerp(255, 220, tt)
		g = lerp(235, 60, tt)
		b = lerp(80, 40, tt)
	}

	if off {
		r = lerp(r, 235, offDesaturation)
		g = lerp(g, 235, offDesaturation)
		b = lerp(b, 235, offDesaturation)
	}

	return RGB{uint8(r), uint8(g), uint8(b)}
}

// Scale is the power range mapped onto the colour gradient.
type Scale struct {
	MinW float64
	MaxW float64
	Auto bool
}

// Fit returns the scale to use for one frame. With Auto set it clips
// the observed powers to roughly the 5th..95th percentile so a single
// heavy outlet does not flatten the rest of the grid, and widens the
// span to minSpanWatts when the readings bunch up. Without Auto, or
// when no readings are available, the fixed bounds are returned as-is.
func (s Scale) Fit(data map[int]OutletData) (pMin, pMax float64) {
	if !s.Auto {
		return s.MinW, s.MaxW
	}

	powers := make([]float64, 0, len(data))
	for _, od := range data {
		if od.PowerW != nil && *od.PowerW >= 0 {
			powers = append(powers, *od.PowerW)
		}
	}
	if len(powers) == 0 {
		return s.MinW, s.MaxW
	}

	sort.Float64s(powers)
	loIdx := int(float64(len(powers))*0.05) - 1
	if loIdx < 0 {
		loIdx = 0
	}
	hiIdx := int(float64(len(powers)) * 0.95)
	if hiIdx > len(powers)-1 {
		hiIdx = len(powers) - 1
	}

	pMin = powers[loIdx]
	pMax = powers[hiIdx]
	if pMax-pMin < minSpanWatts {
		pMax = pMin + minSpanWatts
	}
	return pMin, pMax
}
