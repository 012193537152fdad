package session

import "strings"

// Field is one numeric text box. Input is filtered as it is typed: digits
// anywhere, a single '.', and '-' only as the first character.
type Field struct {
	Label string
	Text  string
}

// Insert appends r if the filter allows it and reports whether it did.
func (f *Field) Insert(r rune) bool {
	switch {
	case r >= '0' && r <= '9':
	case r == '.' && !strings.Contains(f.Text, "."):
	case r == '-' && f.Text == "":
	default:
		return false
	}
	f.Text += string(r)
	return true
}

func (f *Field) Backspace() {
	if f.Text != "" {
		f.Text = f.Text[:len(f.Text)-1]
	}
}

func (f *Field) Clear() { f.Text = "" }

func (f *Field) Value() string { return strings.TrimSpace(f.Text) }

// Form holds the four parameter fields and which one has focus.
type Form struct {
	Fields [4]Field
	Focus  int
}

var labels = [4]string{
	"Mass of Object 1",
	"Mass of Object 2",
	"Velocity of Object 1",
	"Velocity of Object 2",
}

func NewForm() Form {
	var f Form
	for i := range f.Fields {
		f.Fields[i].Label = labels[i]
	}
	return f
}

func (f *Form) Active() *Field { return &f.Fields[f.Focus] }

func (f *Form) Next() { f.Focus = (f.Focus + 1) % len(f.Fields) }

func (f *Form) Prev() { f.Focus = (f.Focus + len(f.Fields) - 1) % len(f.Fields) }

func (f *Form) SetFocus(i int) {
	if i >= 0 && i < len(f.Fields) {
		f.Focus = i
	}
}

func (f *Form) Insert(r rune) bool { return f.Active().Insert(r) }

func (f *Form) Backspace() { f.Active().Backspace() }

// Fill replaces the contents of every field, bypassing the keystroke filter.
// Presets and command-line values go through here.
func (f *Form) Fill(values [4]string) {
	for i := range f.Fields {
		f.Fields[i].Text = values[i]
	}
}

func (f *Form) Values() [4]string {
	var v [4]string
	for i := range f.Fields {
		v[i] = f.Fields[i].Value()
	}
	return v
}

func (f *Form) Clear() {
	for i := range f.Fields {
		f.Fields[i].Clear()
	}
	f.Focus = 0
}
