package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/braille"
	"github.com/san-kum/collide/internal/sim"
)

const (
	colorA = "#0096ff"
	colorB = "#ff5050"
)

// CanvasToSVG converts a Braille canvas to SVG format
func CanvasToSVG(canvas *braille.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotsWide()) * scale
	height := float64(canvas.DotsHigh()) * scale

	var sb strings.Builder
	sb.WriteString(header(width, height))
	sb.WriteString("<g fill=\"#eeeeee\">\n")

	dotRadius := scale * 0.4
	for y := 0; y < canvas.DotsHigh(); y++ {
		for x := 0; x < canvas.DotsWide(); x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WorldLinesSVG draws both positions against time: position runs left to
// right across the viewport, ticks run top to bottom. Collisions are marked.
func WorldLinesSVG(frames []sim.Frame, viewportWidth float64, width, height int) string {
	if len(frames) < 2 || viewportWidth <= 0 {
		return ""
	}

	first, last := frames[0].Tick, frames[len(frames)-1].Tick
	span := float64(last - first)
	if span == 0 {
		span = 1
	}
	px := func(pos float64) float64 { return pos / viewportWidth * float64(width) }
	py := func(tick int) float64 { return float64(tick-first) / span * float64(height) }

	var sb strings.Builder
	sb.WriteString(header(float64(width), float64(height)))

	xa, _ := analysis.Series(frames, "xa")
	xb, _ := analysis.Series(frames, "xb")
	for _, line := range []struct {
		series []float64
		color  string
	}{{xa, colorA}, {xb, colorB}} {
		fmt.Fprintf(&sb, "<path fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" d=\"M", line.color)
		for i, pos := range line.series {
			if i > 0 {
				sb.WriteString(" L")
			}
			fmt.Fprintf(&sb, "%.1f,%.1f", px(pos), py(frames[i].Tick))
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("<g fill=\"#ffc800\">\n")
	for _, f := range frames {
		if f.Collided {
			fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"3\"/>\n", px((f.PositionA+f.PositionB)/2), py(f.Tick))
		}
	}
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func header(width, height float64) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)
}
