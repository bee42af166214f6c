package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/dylan/spotlight/tui/shared"
)

type Model struct {
	title  string
	width  int
	height int
}

func New(appName string) Model {
	return Model{title: appName + " Help"}
}

func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(shared.TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	groups := shared.Keys.FullHelp()
	groupNames := []string{"Scrolling", "Screens", "General"}
	for i, group := range groups {
		writeGroup(&b, groupNames[i], group)
	}
	writeGroup(&b, "During a tour", shared.TourKeys.ShortHelp())

	content := shared.HelpOverlayStyle.Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func writeGroup(b *strings.Builder, name string, bindings []key.Binding) {
	b.WriteString(shared.CardTitleStyle.Render(name))
	b.WriteString("\n")
	for _, k := range bindings {
		help := k.Help()
		b.WriteString("  " + shared.HelpKeyStyle.Render(help.Key) + "  " + shared.HelpDescStyle.Render(help.Desc) + "\n")
	}
	b.WriteString("\n")
}
