package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
		done bool
	}{
		{"yes", []tea.KeyMsg{key("y")}, true, true},
		{"no", []tea.KeyMsg{key("n")}, false, true},
		{"enter keeps default", []tea.KeyMsg{{Type: tea.KeyEnter}}, false, true},
		{"toggle then enter", []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEnter}}, true, true},
		{"escape", []tea.KeyMsg{{Type: tea.KeyRight}, {Type: tea.KeyEsc}}, false, true},
		{"toggle only", []tea.KeyMsg{{Type: tea.KeyLeft}}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m tea.Model = NewConfirmModel("Delete?")
			for _, k := range tt.keys {
				m, _ = m.Update(k)
			}
			got := m.(ConfirmModel)
			if got.Answer != tt.want || got.Done != tt.done {
				t.Errorf("answer = %v done = %v, want %v %v", got.Answer, got.Done, tt.want, tt.done)
			}
		})
	}
}

func TestConfirmModelView(t *testing.T) {
	m := NewConfirmModel("Delete Arthur?")
	if v := m.View(); !strings.Contains(v, "Delete Arthur?") || !strings.Contains(v, "[no]") {
		t.Errorf("View() = %q", v)
	}
	next, _ := m.Update(key("y"))
	if v := next.View(); v != "" {
		t.Errorf("View() after answering = %q, want empty", v)
	}
}
