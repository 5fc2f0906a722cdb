package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModel is a yes/no prompt.
type ConfirmModel struct {
	Question string
	Answer   bool
	Done     bool
}

// NewConfirmModel creates a prompt that defaults to "no".
func NewConfirmModel(question string) ConfirmModel {
	return ConfirmModel{Question: question}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "y":
		m.Answer, m.Done = true, true
		return m, tea.Quit
	case "n", "q", "esc", "ctrl+c":
		m.Answer, m.Done = false, true
		return m, tea.Quit
	case "enter":
		m.Done = true
		return m, tea.Quit
	case "left", "right", "tab", "h", "l":
		m.Answer = !m.Answer
	}
	return m, nil
}

func (m ConfirmModel) View() string {
	if m.Done {
		return ""
	}
	yes, no := StyleDim.Render("yes"), StyleTitle.Render("[no]")
	if m.Answer {
		yes, no = StyleTitle.Render("[yes]"), StyleDim.Render("no")
	}
	return StyleWarning.Render(iconWarning) + " " + m.Question + "  " + yes + " " + no + "\n" +
		StyleDim.Render("  y/n  ←/→ toggle") + "\n"
}

// runConfirm shows a ConfirmModel and returns the answer.
func runConfirm(question string) (bool, error) {
	final, err := tea.NewProgram(NewConfirmModel(question)).Run()
	if err != nil {
		return false, err
	}
	return final.(ConfirmModel).Answer, nil
}
