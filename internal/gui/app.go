package gui

import (
	"errors"
	"io"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/collide/internal/audio"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/session"
)

var (
	ColBg      = rl.NewColor(235, 235, 235, 255)
	ColBox     = rl.NewColor(245, 245, 245, 255)
	ColText    = rl.Black
	ColFocus   = rl.NewColor(0, 150, 255, 255)
	ColBodyA   = rl.NewColor(0, 150, 255, 255)
	ColBodyB   = rl.NewColor(255, 80, 80, 255)
	ColError   = rl.NewColor(255, 80, 80, 255)
	ColStart   = rl.NewColor(0, 255, 120, 255)
	ColPause   = rl.NewColor(255, 200, 0, 255)
	ColButton  = rl.NewColor(170, 170, 170, 255)
	ColTextDim = rl.NewColor(110, 110, 110, 255)
)

const (
	fontSize  = 20
	bigSize   = 30
	titleSize = 40
)

type Options struct {
	Config *config.Config
	Player audio.Player
	Log    logrus.FieldLogger
	// Values prefills the form and starts immediately when set.
	Values *[4]string
}

// App is the desktop host. Update and Draw run once per frame on the window
// thread.
type App struct {
	cfg    *config.Config
	sess   *session.Session
	player audio.Player
	log    logrus.FieldLogger
	ui     layout

	frame    int
	dragging bool
}

func NewApp(opts Options) *App {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	player := opts.Player
	if player == nil {
		player = audio.Nop{}
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	a := &App{
		cfg:    cfg,
		sess:   session.New(cfg.SessionOptions()),
		player: player,
		log:    log,
		ui:     newLayout(float32(cfg.ViewportWidth), float32(cfg.ViewportHeight)),
	}
	player.SetVolume(a.sess.Volume)

	if opts.Values != nil {
		if err := a.sess.StartWith(*opts.Values); err != nil {
			log.WithError(err).Debug("prefilled values rejected")
		}
	}
	return a
}

func initWindow(cfg *config.Config) {
	rl.InitWindow(int32(cfg.ViewportWidth), int32(cfg.ViewportHeight), "1D Collision Simulator")
	rl.SetTargetFPS(int32(cfg.TickRate))
	rl.SetExitKey(0)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	initWindow(cfg)
	defer rl.CloseWindow()

	app := NewApp(opts)
	defer func() { app.player.Close() }()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) Update() {
	a.frame++

	if rl.IsKeyPressed(rl.KeyF) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyO) {
		a.pickSound()
	}

	a.handleMouse()
	if !a.sess.Started() {
		a.handleForm()
	} else {
		if rl.IsKeyPressed(rl.KeySpace) {
			a.sess.TogglePause()
		}
		if rl.IsKeyPressed(rl.KeyR) {
			a.sess.Reset()
		}
	}

	res := a.sess.Frame()
	if res.PlaySound {
		a.player.Play()
	}
}

func (a *App) handleForm() {
	form := &a.sess.Form
	if rl.IsKeyPressed(rl.KeyTab) {
		if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
			form.Prev()
		} else {
			form.Next()
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		form.Backspace()
	}
	for r := rl.GetCharPressed(); r > 0; r = rl.GetCharPressed() {
		form.Insert(rune(r))
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter) {
		a.start()
	}
}

func (a *App) handleMouse() {
	mouse := rl.GetMousePosition()

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		switch {
		case !a.sess.Started() && rl.CheckCollisionPointRec(mouse, a.ui.start):
			a.start()
		case a.sess.Started() && rl.CheckCollisionPointRec(mouse, a.ui.pause):
			a.sess.TogglePause()
		case a.sess.Started() && rl.CheckCollisionPointRec(mouse, a.ui.reset):
			a.sess.Reset()
		case rl.CheckCollisionPointRec(mouse, a.ui.sound):
			a.sess.ToggleSound()
		case rl.CheckCollisionPointRec(mouse, a.ui.sliderHit()):
			a.dragging = true
		}

		if !a.sess.Started() {
			for i, r := range a.ui.inputs {
				if rl.CheckCollisionPointRec(mouse, r) {
					a.sess.Form.SetFocus(i)
				}
			}
		}
	}

	if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
		a.dragging = false
	}
	if a.dragging {
		a.sess.SetVolume(a.ui.volumeAt(mouse.X))
		a.player.SetVolume(a.sess.Volume)
	}
}

func (a *App) start() {
	if err := a.sess.Start(); err != nil {
		a.log.WithError(err).Debug("start rejected")
		return
	}
	a.log.WithField("params", a.sess.Params()).Debug("run started")
}

// pickSound replaces the collision sound with a WAV chosen in a native
// dialog. The current player stays when the dialog is cancelled or the
// file cannot be played.
func (a *App) pickSound() {
	path, err := zenity.SelectFile(
		zenity.Title("Choose Collision Sound"),
		zenity.FileFilters{{
			Name:     "WAV audio",
			Patterns: []string{"*.wav", "*.WAV"},
		}},
	)
	if err != nil {
		if !errors.Is(err, zenity.ErrCanceled) {
			a.log.WithError(err).Warn("file dialog failed")
		}
		return
	}

	w, err := audio.OpenWAV(path)
	if err != nil {
		a.log.WithError(err).WithField("file", path).Warn("cannot use sound file")
		return
	}
	a.player.Close()
	w.SetVolume(a.sess.Volume)
	a.player = w
	a.log.WithField("file", path).Info("collision sound changed")
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if !a.sess.Started() {
		a.drawSetup()
	} else {
		a.drawSim()
	}
	a.drawSound()

	rl.EndDrawing()
}

func (a *App) drawSetup() {
	title := "1D Collision Simulator"
	rl.DrawText(title, int32(a.ui.width)/2-rl.MeasureText(title, titleSize)/2, 90, titleSize, ColText)

	form := a.sess.Form
	for i, f := range form.Fields {
		r := a.ui.inputs[i]
		rl.DrawText(f.Label, 220, int32(r.Y)+18, fontSize, ColText)

		border := ColText
		if i == form.Focus {
			border = ColFocus
		}
		rl.DrawRectangleRounded(r, 0.25, 8, rl.White)
		rl.DrawRectangleLinesEx(r, 2, border)

		tx := int32(r.X) + 10
		rl.DrawText(f.Text, tx, int32(r.Y)+18, fontSize, ColText)

		if i == form.Focus && (a.frame/cursorRate)%2 == 0 {
			cx := float32(tx + rl.MeasureText(f.Text, fontSize) + 2)
			rl.DrawLineEx(rl.NewVector2(cx, r.Y+14), rl.NewVector2(cx, r.Y+39), 2, ColText)
		}
	}

	s := a.ui.start
	rl.DrawRectangleRounded(s, 0.3, 8, ColStart)
	rl.DrawText("START", int32(s.X+s.Width/2)-rl.MeasureText("START", bigSize)/2, int32(s.Y)+12, bigSize, ColText)

	if msg := a.sess.Error(); msg != "" {
		rl.DrawText(msg, int32(a.ui.width)/2-rl.MeasureText(msg, fontSize)/2, int32(s.Y)+70, fontSize, ColError)
	}

	c := a.ui.constraints
	rl.DrawRectangleRounded(c, 0.15, 8, ColBox)
	rl.DrawRectangleLinesEx(c, 2, ColText)
	vmax := strconv.FormatFloat(a.sess.Limits().MaxVelocity, 'f', -1, 64)
	rl.DrawText("Input Constraints:", int32(c.X)+15, int32(c.Y)+10, fontSize, ColText)
	rl.DrawText("- Mass > 0", int32(c.X)+15, int32(c.Y)+45, fontSize, ColText)
	rl.DrawText("- Velocity range: -"+vmax+" to "+vmax, int32(c.X)+15, int32(c.Y)+75, fontSize, ColText)
}

func (a *App) drawSim() {
	st := a.sess.State
	mid := int32(a.ui.height) / 2

	rl.DrawCircle(int32(st.A.Position), mid, float32(st.A.Radius), ColBodyA)
	rl.DrawCircle(int32(st.B.Position), mid, float32(st.B.Radius), ColBodyB)

	rl.DrawText(session.ObjectLine(1, st.A), 40, mid-90, fontSize, ColText)
	rl.DrawText(session.ObjectLine(2, st.B), 40, mid+40, fontSize, ColText)

	label := "PAUSE"
	if st.Phase == physics.Paused {
		label = "RESUME"
	}
	a.button(a.ui.pause, label, ColPause)
	a.button(a.ui.reset, "RESET", ColButton)
}

func (a *App) drawSound() {
	state := "Sound: OFF"
	if a.sess.SoundOn {
		state = "Sound: ON"
	}
	a.button(a.ui.sound, state, ColButton)

	bar := a.ui.slider
	rl.DrawText("Volume", int32(bar.X), int32(bar.Y)-25, fontSize, ColText)
	rl.DrawRectangleRec(bar, ColText)
	rl.DrawCircle(a.ui.knobX(a.sess.Volume), int32(bar.Y)+2, 8, ColBodyB)

	rl.DrawText("[F] FULLSCREEN  [O] SOUND FILE", 20, int32(a.ui.height)-30, 16, ColTextDim)
}

func (a *App) button(r rl.Rectangle, text string, col rl.Color) {
	rl.DrawRectangleRounded(r, 0.3, 8, col)
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(r.X+r.Width/2)-w/2, int32(r.Y+r.Height/2)-fontSize/2, fontSize, ColText)
}
