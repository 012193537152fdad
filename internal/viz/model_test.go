package viz

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/physics"
)

type fakePlayer struct {
	plays  int
	volume float64
}

func (p *fakePlayer) Play()               { p.plays++ }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Close() error        { return nil }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		m = send(m, TickMsg{})
	}
	return m
}

func TestModelStartFromForm(t *testing.T) {
	m := NewModel(Options{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	m = send(m, runes("3"), tab, runes("1"), tab, runes("4"), tab, runes("0"), tea.KeyMsg{Type: tea.KeyEnter})

	if !m.Session().Started() {
		t.Fatalf("run did not start, error %q", m.Session().Error())
	}
	if m.Session().Phase() != physics.Running {
		t.Errorf("phase = %v", m.Session().Phase())
	}
	p := m.Session().Params()
	if p.Mass1 != 3 || p.Mass2 != 1 || p.Velocity1 != 4 || p.Velocity2 != 0 {
		t.Errorf("params = %+v", p)
	}

	m = tick(m, 10)
	if m.Session().State.Ticks != 10 {
		t.Errorf("ticks = %d", m.Session().State.Ticks)
	}
	if !strings.Contains(m.View(), "Object 1 | Mass: 3 | Velocity: 4.00") {
		t.Errorf("missing object line in view:\n%s", m.View())
	}
}

func TestModelRejectsInvalidInput(t *testing.T) {
	m := NewModel(Options{})
	m = send(m, runes("0"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Session().Started() {
		t.Fatal("invalid input must not start the run")
	}
	if !strings.Contains(m.View(), "Invalid input") {
		t.Errorf("expected error line in view:\n%s", m.View())
	}

	m = tick(m, config.DefaultConfig().ErrorFrames)
	if m.Session().Error() != "" {
		t.Errorf("error did not expire: %q", m.Session().Error())
	}
}

func TestModelFormFilter(t *testing.T) {
	m := NewModel(Options{})
	m = send(m, runes("-1.5.-x"), tea.KeyMsg{Type: tea.KeyBackspace})

	if got := m.Session().Form.Fields[0].Text; got != "-1." {
		t.Errorf("field text = %q", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Session().Form.Focus != 3 {
		t.Errorf("focus = %d", m.Session().Form.Focus)
	}
}

func TestModelPauseResetRestart(t *testing.T) {
	values := [4]string{"1", "1", "5", "-5"}
	m := NewModel(Options{Values: &values})
	if !m.Session().Started() {
		t.Fatal("prefilled values must start the run")
	}

	m = tick(m, 5)
	m = send(m, runes(" "))
	m = tick(m, 5)
	if m.Session().Phase() != physics.Paused || m.Session().State.Ticks != 5 {
		t.Errorf("pause failed: %v at %d", m.Session().Phase(), m.Session().State.Ticks)
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view does not show pause")
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Session().Phase() != physics.Running || m.Session().State.Ticks != 0 {
		t.Errorf("restart failed: %v at %d", m.Session().Phase(), m.Session().State.Ticks)
	}

	m = send(m, runes("r"))
	if m.Session().Started() {
		t.Error("reset must return to setup")
	}
	if !strings.Contains(m.View(), "1D Collision Simulator") {
		t.Error("setup view not shown after reset")
	}
}

func TestModelCollisionSound(t *testing.T) {
	values := [4]string{"1", "1", "5", "-5"}
	player := &fakePlayer{}
	m := NewModel(Options{Values: &values, Player: player})

	m = tick(m, 60)
	if player.plays != 1 || m.collisions != 1 {
		t.Errorf("plays = %d, collisions = %d", player.plays, m.collisions)
	}

	m = send(m, runes("s"), runes("r"), runes("1"))
	m.Session().Form.Fill(values)
	m = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = tick(m, 60)
	if player.plays != 1 {
		t.Errorf("muted collision played: %d", player.plays)
	}
}

func TestModelVolume(t *testing.T) {
	values := [4]string{"1", "1", "0", "0"}
	player := &fakePlayer{}
	m := NewModel(Options{Values: &values, Player: player})

	if player.volume != config.DefaultVolume {
		t.Errorf("initial volume = %v", player.volume)
	}

	m = send(m, runes("+"), runes("+"))
	if v := m.Session().Volume; v < 0.69 || v > 0.71 {
		t.Errorf("volume = %v", v)
	}
	for i := 0; i < 20; i++ {
		m = send(m, runes("-"))
	}
	if m.Session().Volume != 0 || player.volume != 0 {
		t.Errorf("volume not clamped: %v %v", m.Session().Volume, player.volume)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(Options{})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q must quit")
	}
}

func TestModelHistory(t *testing.T) {
	values := [4]string{"1", "1", "2", "-2"}
	m := NewModel(Options{Values: &values})
	m = tick(m, historyCapacity+20)

	if len(m.historyA) != historyCapacity || len(m.historyB) != historyCapacity {
		t.Errorf("history = %d/%d", len(m.historyA), len(m.historyB))
	}
	if !strings.Contains(m.View(), "velocity") {
		t.Error("velocity chart missing")
	}
}
