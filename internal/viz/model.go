package viz

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/collide/internal/audio"
	"github.com/san-kum/collide/internal/braille"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
	"github.com/san-kum/collide/internal/session"
)

const (
	trackWidth      = 60
	trackHeight     = 8
	historyCapacity = 240
	volumeStep      = 0.1
	cursorBlink     = 30
)

type TickMsg time.Time

type Options struct {
	Config *config.Config
	Player audio.Player
	Log    logrus.FieldLogger
	Theme  string
	// Values prefills the form and starts immediately when set.
	Values *[4]string
}

// Model is the terminal host. It owns the session and advances it once per
// tick message.
type Model struct {
	sess     *session.Session
	player   audio.Player
	log      logrus.FieldLogger
	canvas   *braille.Canvas
	theme    Theme
	st       styles
	tickRate int

	frame      int
	collisions int
	historyA   []float64
	historyB   []float64
}

func NewModel(opts Options) Model {
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
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	rate := cfg.TickRate
	if rate <= 0 {
		rate = config.DefaultTickRate
	}

	theme := GetTheme(opts.Theme)
	m := Model{
		sess:     session.New(cfg.SessionOptions()),
		player:   player,
		log:      log,
		canvas:   braille.NewCanvas(trackWidth, trackHeight),
		theme:    theme,
		st:       newStyles(theme),
		tickRate: rate,
		historyA: make([]float64, 0, historyCapacity),
		historyB: make([]float64, 0, historyCapacity),
	}
	player.SetVolume(m.sess.Volume)

	if opts.Values != nil {
		if err := m.sess.StartWith(*opts.Values); err != nil {
			log.WithError(err).Debug("prefilled values rejected")
		}
	}
	return m
}

// Session exposes the underlying session, mostly for tests.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.tickRate), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m, tea.Quit
		}
		if m.sess.Started() {
			return m.runKey(msg)
		}
		return m.setupKey(msg)
	case TickMsg:
		m.step()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) setupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.sess.Form.Next()
	case "shift+tab":
		m.sess.Form.Prev()
	case "enter":
		m.start()
	case "backspace":
		m.sess.Form.Backspace()
	case "up":
		m.adjustVolume(volumeStep)
	case "down":
		m.adjustVolume(-volumeStep)
	case "q":
		return m, tea.Quit
	case "s":
		m.sess.ToggleSound()
	case "t":
		m.setTheme(NextTheme(m.theme))
	default:
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				m.sess.Form.Insert(r)
			}
		}
	}
	return m, nil
}

func (m Model) runKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case " ":
		m.sess.TogglePause()
	case "r":
		m.sess.Reset()
		m.clearHistory()
	case "enter":
		m.sess.Restart()
		m.clearHistory()
	case "s":
		m.sess.ToggleSound()
	case "+", "=", "up":
		m.adjustVolume(volumeStep)
	case "-", "_", "down":
		m.adjustVolume(-volumeStep)
	case "t":
		m.setTheme(NextTheme(m.theme))
	}
	return m, nil
}

func (m *Model) start() {
	if err := m.sess.Start(); err != nil {
		m.log.WithError(err).Debug("start rejected")
		return
	}
	m.clearHistory()
	m.log.WithField("params", m.sess.Params()).Debug("run started")
}

func (m *Model) adjustVolume(delta float64) {
	m.sess.SetVolume(m.sess.Volume + delta)
	m.player.SetVolume(m.sess.Volume)
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.st = newStyles(t)
}

func (m *Model) clearHistory() {
	m.collisions = 0
	m.historyA = m.historyA[:0]
	m.historyB = m.historyB[:0]
}

// step advances one frame: tick, sound, history.
func (m *Model) step() {
	m.frame++
	res := m.sess.Frame()
	if res.Collided {
		m.collisions++
	}
	if res.PlaySound {
		m.player.Play()
	}

	if m.sess.Phase() != physics.Running {
		return
	}
	st := m.sess.State
	if len(m.historyA) == historyCapacity {
		m.historyA = append(m.historyA[:0], m.historyA[1:]...)
		m.historyB = append(m.historyB[:0], m.historyB[1:]...)
	}
	m.historyA = append(m.historyA, st.A.Velocity)
	m.historyB = append(m.historyB, st.B.Velocity)
}

func (m Model) View() string {
	if !m.sess.Started() {
		return m.viewSetup()
	}
	return m.viewSim()
}

func (m Model) viewSetup() string {
	var b strings.Builder
	b.WriteString(m.st.title.Render("1D Collision Simulator") + "\n")

	form := m.sess.Form
	rows := make([]string, 0, len(form.Fields))
	for i, f := range form.Fields {
		text := f.Text
		style := m.st.field
		if i == form.Focus {
			style = m.st.focused
			if (m.frame/cursorBlink)%2 == 0 {
				text += "▏"
			}
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Center, m.st.label.Render(f.Label), style.Render(text)))
	}
	formView := lipgloss.JoinVertical(lipgloss.Left, rows...)

	limits := m.sess.Limits()
	vmax := strconv.FormatFloat(limits.MaxVelocity, 'f', -1, 64)
	constraints := m.st.box.Render(
		"Input Constraints:\n" +
			"• Mass > 0\n" +
			"• Velocity range: -" + vmax + " to " + vmax)

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, formView, "    ", constraints) + "\n\n")
	b.WriteString(m.st.running.Render("[ START ]") + m.st.subtle.Render("  enter") + "\n")

	if msg := m.sess.Error(); msg != "" {
		b.WriteString(m.st.errLine.Render(msg))
	}
	b.WriteString("\n\n" + m.soundLine() + "\n")
	b.WriteString(m.st.keyHint.Render("tab/shift+tab: field  enter: start  ↑↓: volume  s: sound  t: theme  q: quit"))
	return b.String()
}

func (m Model) viewSim() string {
	st := m.sess.State
	m.draw(st)

	var s strings.Builder
	if st.Phase == physics.Paused {
		s.WriteString(m.st.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(m.st.running.Render("RUNNING") + "\n\n")
	}
	s.WriteString(m.st.bodyA.Render(session.ObjectLine(1, st.A)) + "\n")
	s.WriteString(m.st.bodyB.Render(session.ObjectLine(2, st.B)) + "\n\n")
	s.WriteString(m.stat("Ticks", strconv.Itoa(st.Ticks)))
	s.WriteString(m.stat("Collisions", strconv.Itoa(m.collisions)))
	s.WriteString(m.stat("Momentum", fmt.Sprintf("%.4f", st.Momentum())))
	s.WriteString(m.stat("Kinetic energy", fmt.Sprintf("%.4f", st.KineticEnergy())))

	if len(m.historyA) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.historyA, m.historyB},
			asciigraph.Height(6),
			asciigraph.Width(40),
			asciigraph.Caption("velocity"),
			asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		)
		s.WriteString("\n" + chart + "\n")
	}

	track := lipgloss.NewStyle().Foreground(m.theme.Text).Render(m.canvas.String())
	view := lipgloss.JoinHorizontal(lipgloss.Top, track, m.st.stats.Render(s.String()))

	return view + "\n" + m.soundLine() + "\n" +
		m.st.keyHint.Render("space: pause  enter: restart  r: reset  +/-: volume  s: sound  t: theme  q: quit")
}

func (m Model) stat(label, value string) string {
	return lipgloss.NewStyle().Foreground(m.theme.Muted).Width(16).Render(label) + m.st.value.Render(value) + "\n"
}

func (m Model) soundLine() string {
	state := "OFF"
	if m.sess.SoundOn {
		state = "ON"
	}
	return m.st.subtle.Render("Sound: "+state+"  Volume ") + m.st.bar(m.sess.Volume, 10) +
		m.st.subtle.Render(fmt.Sprintf(" %3.0f%%", m.sess.Volume*100))
}

func (m Model) draw(st *physics.State) {
	braille.DrawScene(m.canvas, st.Width(), st.A, st.B)
}

// Run starts the terminal host in the alternate screen.
func Run(opts Options) error {
	_, err := tea.NewProgram(NewModel(opts), tea.WithAltScreen()).Run()
	return err
}
