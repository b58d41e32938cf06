package heatmap

import (
	"fmt"
	"strings"
	"time"
)

// Grid layout. Outlets run top to bottom, left column first, matching
// the physical outlet banks on the emulated unit.
const (
	gridRows = 24
	gridCols = 2
)

// OutletPosition maps an outlet index to its grid cell.
//
// Returns:
//   - row: 0..23, top to bottom
//   - col: 0 for outlets 1..24, 1 for 25..48
//   - ok: false when the outlet is outside the 48-outlet layout
func OutletPosition(outlet int) (row, col int, ok bool) {
	switch {
	case outlet >= 1 && outlet <= gridRows:
		return outlet - 1, 0, true
	case outlet >= gridRows+1 && outlet <= gridRows*gridCols:
		return outlet - gridRows - 1, 1, true
	}
	return 0, 0, false
}

// FormatPower renders a wattage for a tile label. Readings of a
// kilowatt or more switch units to keep the column width stable.
func FormatPower(powerW *float64) string {
	if powerW == nil {
		return "P:     n/a"
	}
	if *powerW >= 1000 {
		return fmt.Sprintf("P: %5.2fkW", *powerW/1000)
	}
	return fmt.Sprintf("P: %5.0f W", *powerW)
}

// FormatEnergy renders an energy figure for a tile label.
func FormatEnergy(energyKWh *float64) string {
	if energyKWh == nil {
		return "E:      n/a"
	}
	return fmt.Sprintf("E: %7.3f kWh", *energyKWh)
}

// Renderer draws snapshot frames as ANSI text for the terminal.
type Renderer struct {
	PDUID string
	Scale Scale
}

// cell renders one outlet tile with a truecolor background.
func (r Renderer) cell(od OutletData, pMin, pMax float64) string {
	on := od.On()
	colour := HeatColor(od.PowerW, pMin, pMax, !on)

	state := "ON "
	if !on {
		state = "OFF"
	}

	label := fmt.Sprintf(" %02d  %s  %s  %s ",
		od.Outlet, FormatPower(od.PowerW), FormatEnergy(od.EnergyKWh), state)
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm\x1b[38;2;0;0;0m%s\x1b[0m",
		colour.R, colour.G, colour.B, label)
}

// Render draws one full frame from a snapshot. Missing outlets render
// as empty tiles so a short map never shifts the layout.
func (r Renderer) Render(data map[int]OutletData, at time.Time) string {
	pMin, pMax := r.Scale.Fit(data)

	var sb strings.Builder
	fmt.Fprintf(&sb, "PDU %s outlet power heat map   blue=low yellow=mid red=high\n", r.PDUID)

	scaleNote := ""
	if r.Scale.Auto {
		scaleNote = " (auto)"
	}
	fmt.Fprintf(&sb, "Heat scale: %.0f W .. %.0f W%s   last update %s\n\n",
		pMin, pMax, scaleNote, at.Format("2006-01-02 15:04:05"))

	for row := 0; row < gridRows; row++ {
		left, leftOK := data[row+1]
		right, rightOK := data[row+1+gridRows]
		if leftOK {
			sb.WriteString(r.cell(left, pMin, pMax))
		}
		sb.WriteString("  ")
		if rightOK {
			sb.WriteString(r.cell(right, pMin, pMax))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
