package gui

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	formStartY = 190
	formGap    = 70
	cursorRate = 30
)

// layout holds every widget rectangle for a viewport of the given width.
type layout struct {
	width, height float32

	inputs      [4]rl.Rectangle
	start       rl.Rectangle
	pause       rl.Rectangle
	reset       rl.Rectangle
	slider      rl.Rectangle
	sound       rl.Rectangle
	constraints rl.Rectangle
}

func newLayout(width, height float32) layout {
	l := layout{width: width, height: height}
	for i := range l.inputs {
		l.inputs[i] = rl.NewRectangle(440, float32(formStartY+i*formGap), 200, 55)
	}
	l.start = rl.NewRectangle(420, formStartY+4*formGap+10, 220, 55)
	l.pause = rl.NewRectangle(800, 20, 170, 45)
	l.reset = rl.NewRectangle(800, 75, 170, 45)
	l.slider = rl.NewRectangle(width-260, 500, 200, 5)
	l.sound = rl.NewRectangle(width-240, 520, 160, 40)
	l.constraints = rl.NewRectangle(width-300, 100, 260, 120)
	return l
}

// sliderHit is the slider bar grown vertically so it can be grabbed.
func (l layout) sliderHit() rl.Rectangle {
	r := l.slider
	r.Y -= 8
	r.Height += 16
	return r
}

func (l layout) volumeAt(x float32) float64 {
	v := float64((x - l.slider.X) / l.slider.Width)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (l layout) knobX(volume float64) int32 {
	return int32(l.slider.X + float32(volume)*l.slider.Width)
}
