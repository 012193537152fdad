package braille

import (
	"strings"
	"testing"

	"github.com/san-kum/collide/internal/physics"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)

	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	c.Set(0, 4)

	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) || c.IsSet(-1, 0) {
		t.Error("IsSet mismatch")
	}

	c.Clear()
	if c.String() != "⠀⠀\n" {
		t.Errorf("clear failed: %q", c.String())
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawLine(0, 0, 7, 0)
	for x := 0; x < 8; x++ {
		if !c.IsSet(x, 0) {
			t.Errorf("dot %d not set", x)
		}
	}

	c.Clear()
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot %d not set", i)
		}
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.FillCircle(10, 10, 3)

	if !c.IsSet(10, 10) || !c.IsSet(13, 10) || !c.IsSet(10, 7) {
		t.Error("circle interior missing")
	}
	if c.IsSet(13, 13) || c.IsSet(14, 10) {
		t.Error("circle leaked outside radius")
	}

	c.Clear()
	c.FillCircle(5, 5, 0)
	if !c.IsSet(5, 5) {
		t.Error("zero radius must mark the centre")
	}

	// partially off canvas must not panic
	c.FillCircle(0, 0, 4)
	c.FillCircle(19, 19, 4)
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(3, 2)
	lines := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	if len([]rune(lines[0])) != 3 {
		t.Errorf("expected 3 cells, got %d", len([]rune(lines[0])))
	}
}

func TestDrawScene(t *testing.T) {
	c := NewCanvas(10, 2)
	c.Set(5, 1)

	DrawScene(c, 1000, physics.Body{Position: 500, Radius: 20})

	if c.IsSet(5, 1) {
		t.Error("scene should clear the canvas first")
	}
	if !c.IsSet(0, 0) || !c.IsSet(19, 0) || !c.IsSet(10, 7) {
		t.Error("walls and floor missing")
	}
	if !c.IsSet(9, 4) {
		t.Error("body centre missing")
	}
}
