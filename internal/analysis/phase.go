package analysis

import (
	"strings"

	"github.com/san-kum/collide/internal/sim"
)

type Point struct{ X, Y float64 }

// PhasePortrait holds the position/velocity trajectory of one body.
type PhasePortrait struct {
	Body   string
	Points []Point
}

// NewPhasePortrait collects (position, velocity) points for body "a" or "b".
func NewPhasePortrait(frames []sim.Frame, body string) *PhasePortrait {
	portrait := &PhasePortrait{
		Body:   body,
		Points: make([]Point, 0, len(frames)),
	}
	for _, f := range frames {
		p := Point{X: f.PositionA, Y: f.VelocityA}
		if body == "b" {
			p = Point{X: f.PositionB, Y: f.VelocityB}
		}
		portrait.Points = append(portrait.Points, p)
	}
	return portrait
}

// ASCII renders the portrait on a width x height character grid.
func (portrait *PhasePortrait) ASCII(width, height int) string {
	if portrait == nil || len(portrait.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := portrait.Points[0].X, portrait.Points[0].X
	minY, maxY := portrait.Points[0].Y, portrait.Points[0].Y

	for _, p := range portrait.Points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	// zero velocity axis
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			canvas[row][col] = '─'
		}
	}

	for _, p := range portrait.Points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
