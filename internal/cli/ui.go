package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/kintree/pkg/family"
)

// stdout receives all command output; tests swap it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - union markers
	colorBlue   = lipgloss.Color("75")  // Light blue - male
	colorPink   = lipgloss.Color("211") // Pink - female
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleMale   = lipgloss.NewStyle().Foreground(colorBlue)
	styleFemale = lipgloss.NewStyle().Foreground(colorPink)
	styleOther  = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// status prints one icon-prefixed line.
func status(icon string, iconStyle lipgloss.Style, msg string) {
	fmt.Fprintln(stdout, iconStyle.Render(icon)+" "+msg)
}

func printSuccess(format string, args ...any) {
	status(iconSuccess, styleIconSuccess, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(iconWarning, styleIconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(iconInfo, styleIconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

var styleKey = lipgloss.NewStyle().Foreground(colorGray).Width(12)

// printKeyValue prints one "label  value" line of a member card.
func printKeyValue(label, value string) {
	fmt.Fprintln(stdout, styleKey.Render(label)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Members
// =============================================================================

// genderStyle returns the accent style for a member's gender.
func genderStyle(g family.Gender) lipgloss.Style {
	switch g {
	case family.Male:
		return styleMale
	case family.Female:
		return styleFemale
	}
	return styleOther
}

// memberLabel renders "Name Surname (id)" with gender colouring.
func memberLabel(m family.Member) string {
	return genderStyle(m.Gender).Render(m.FullName()) + " " + StyleDim.Render("("+m.ShortID()+")")
}

// printMember prints every field of m as key-value lines.
func printMember(tree *family.Tree, m family.Member) {
	printKeyValue("ID", m.ID)
	printKeyValue("Name", m.FullName())
	printKeyValue("Gender", string(m.Gender))
	if life := m.Lifespan(); life != "" {
		printKeyValue("Life", life)
	}
	for _, rel := range []struct{ label, id string }{
		{"Father", m.FatherID},
		{"Mother", m.MotherID},
		{"Spouse", m.SpouseID},
	} {
		if rel.id == "" {
			continue
		}
		name := StyleWarning.Render("missing " + rel.id)
		if r, ok := tree.Get(rel.id); ok {
			name = r.FullName()
		}
		printKeyValue(rel.label, name)
	}
	if m.Bio != "" {
		printKeyValue("Bio", m.Bio)
	}
}
