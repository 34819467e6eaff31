// Package export writes rendered glider scenes to SVG files, standing
// in for the original program's window screenshots.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/gliderlab/internal/field"
	"github.com/san-kum/gliderlab/internal/geom"
)

const (
	backgroundColor = "#1e1e1e"
	planetColor     = "#b4c8d2"
	trajectoryColor = "#c8c8c8"
)

// SceneSVG renders a planetary system and a set of trajectories into
// an SVG document sized to the system bounds.
func SceneSVG(sys *field.System, trajs [][]geom.Vec2) string {
	w := sys.Bounds.Width()
	h := sys.Bounds.Height()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, backgroundColor))

	for _, p := range sys.Planets {
		r := math.Sqrt(p.Mass) * 10
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, p.Pos.X-sys.Bounds.Min.X, p.Pos.Y-sys.Bounds.Min.Y, r, planetColor))
	}

	for _, traj := range trajs {
		writePolyline(&sb, sys.Bounds, traj)
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func writePolyline(sb *strings.Builder, bounds geom.Rect, traj []geom.Vec2) {
	if len(traj) < 2 {
		return
	}

	sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.4" stroke-width="1" d="`, trajectoryColor))
	started := false
	for _, p := range traj {
		if !p.IsValid() {
			continue
		}
		x := p.X - bounds.Min.X
		y := p.Y - bounds.Min.Y
		if !started {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			started = true
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")
}

// SceneToSVG writes the rendered scene to path.
func SceneToSVG(path string, sys *field.System, trajs [][]geom.Vec2) error {
	return os.WriteFile(path, []byte(SceneSVG(sys, trajs)), 0644)
}
