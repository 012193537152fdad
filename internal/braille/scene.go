package braille

import "github.com/san-kum/collide/internal/physics"

// DrawScene maps a viewport of the given width onto c: walls at both edges,
// the bodies on the centre line.
func DrawScene(c *Canvas, width float64, bodies ...physics.Body) {
	c.Clear()

	w, h := c.DotsWide(), c.DotsHigh()
	c.DrawLine(0, 0, 0, h-1)
	c.DrawLine(w-1, 0, w-1, h-1)
	c.DrawLine(0, h-1, w-1, h-1)

	scale := float64(w-1) / width
	mid := h / 2
	for _, b := range bodies {
		c.FillCircle(int(b.Position*scale), mid, int(b.Radius*scale))
	}
}
