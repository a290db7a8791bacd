package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"focusnav/internal/input"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		section: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginTop(1),
		key:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Render lays out the aggregated help entries and the active contexts,
// innermost first
func (r *HelpRenderer) Render(entries []input.HelpEntry, contexts []string) string {
	var help strings.Builder

	help.WriteString(r.title.Render("focusnav Help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Keys"))
	help.WriteString("\n")
	width := 0
	for _, e := range entries {
		if w := lipgloss.Width(displayKey(e.Key)); w > width {
			width = w
		}
	}
	for _, e := range entries {
		k := displayKey(e.Key)
		pad := strings.Repeat(" ", width-lipgloss.Width(k))
		help.WriteString(fmt.Sprintf("  %s%s  %s\n", r.key.Render(k), pad, r.desc.Render(e.Description)))
	}

	help.WriteString("\n")
	help.WriteString(r.section.Render("Focus"))
	help.WriteString("\n")
	for i := len(contexts) - 1; i >= 0; i-- {
		help.WriteString(fmt.Sprintf("  %s\n", r.desc.Render(contexts[i])))
	}

	return help.String()
}

// displayKey names keys whose binding string is not readable on its own
func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// pagerCommand shows content in the ov pager. It implements tea.ExecCommand
// so bubbletea releases the terminal while the pager runs.
type pagerCommand struct {
	content string
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
}

func newPagerCommand(content string) *pagerCommand {
	return &pagerCommand{content: content}
}

func (c *pagerCommand) SetStdin(r io.Reader)  { c.stdin = r }
func (c *pagerCommand) SetStdout(w io.Writer) { c.stdout = w }
func (c *pagerCommand) SetStderr(w io.Writer) { c.stderr = w }

// Run takes over the terminal until the pager is closed
func (c *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(c.content))
	if err != nil {
		return fmt.Errorf("open help pager: %w", err)
	}

	// Don't write the help back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
