package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// renderList renders the left panel: one line per group, scrolled so the
// cursor stays visible.
func (m model) renderList(width, height int) string {
	if len(m.groups) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No messages")
	}

	var lines []string
	for i, g := range m.groups {
		if i < m.listOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, formatGroupLine(g, width, i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatGroupLine formats a group as "> 2024   1234 msgs".
func formatGroupLine(g group, width int, selected bool) string {
	count := fmt.Sprintf("%d msgs", len(g.messages))
	labelMax := width - 2 - runewidth.StringWidth(count) - 1
	if labelMax < 0 {
		labelMax = 0
	}
	label := runewidth.Truncate(g.label, labelMax, "")
	label = runewidth.FillRight(label, labelMax)

	line := label + " " + styleListCount.Render(count)
	if selected {
		return styleListSelected.Render("> ") + line
	}
	return "  " + line
}

// adjustListScroll keeps the cursor inside the visible window.
func (m *model) adjustListScroll(listHeight int) {
	if listHeight < 1 {
		listHeight = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+listHeight {
		m.listOffset = m.cursor - listHeight + 1
	}
}
