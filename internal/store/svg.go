package store

import (
	"fmt"
	"strings"
)

// GroundTrackSVG renders the north/east trajectory of a run as an SVG
// polyline. Rows are the 12-column state rows from LoadStates; east
// maps to the horizontal axis, north to the vertical.
func GroundTrackSVG(rows [][]float64, width, height int, strokeColor string) string {
	if len(rows) < 2 {
		return ""
	}

	minE, maxE := rows[0][1], rows[0][1]
	minN, maxN := rows[0][0], rows[0][0]
	for _, r := range rows {
		if len(r) < 2 {
			continue
		}
		if r[1] < minE {
			minE = r[1]
		}
		if r[1] > maxE {
			maxE = r[1]
		}
		if r[0] < minN {
			minN = r[0]
		}
		if r[0] > maxN {
			maxN = r[0]
		}
	}

	rangeE := maxE - minE
	rangeN := maxN - minN
	if rangeE == 0 {
		rangeE = 1
	}
	if rangeN == 0 {
		rangeN = 1
	}
	minE -= rangeE * 0.1
	maxE += rangeE * 0.1
	minN -= rangeN * 0.1
	maxN += rangeN * 0.1
	rangeE = maxE - minE
	rangeN = maxN - minN

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, r := range rows {
		if len(r) < 2 {
			continue
		}
		x := (r[1] - minE) / rangeE * float64(width)
		y := float64(height) - (r[0]-minN)/rangeN*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
