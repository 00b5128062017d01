package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/stats"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// group is one entry of the left panel: the whole transcript or one year.
type group struct {
	label    string
	messages []parse.Message
	stats    []stats.Stat
}

func buildGroups(messages []parse.Message) []group {
	if len(messages) == 0 {
		return nil
	}
	groups := []group{{
		label:    "All years",
		messages: messages,
		stats:    stats.Aggregate(messages),
	}}
	for _, yg := range stats.GroupByYear(messages) {
		groups = append(groups, group{
			label:    fmt.Sprint(yg.Year),
			messages: yg.Messages,
			stats:    yg.Stats,
		})
	}
	return groups
}

type model struct {
	title      string
	groups     []group
	sort       render.SortBy
	cursor     int
	listOffset int
	preview    viewport.Model
	status     string
	width      int
	height     int
	ready      bool
	quitting   bool

	copyText func(string) error
}

func initialModel(title string, messages []parse.Message, by render.SortBy) model {
	m := model{
		title:    title,
		groups:   buildGroups(messages),
		sort:     by,
		preview:  viewport.New(0, 0),
		copyText: clipboard.WriteAll,
	}
	m.refreshPreview()
	return m
}

// Run starts the browser and blocks until the user quits.
func Run(title string, messages []parse.Message, by render.SortBy) error {
	m := initialModel(title, messages, by)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.preview = viewport.New(m.previewWidth(), m.panelHeight())
		m.refreshPreview()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.groups)-1 {
				m.cursor++
				m.adjustListScroll(m.panelHeight())
				m.refreshPreview()
			}
			return m, nil

		case key.Matches(msg, keys.Sort):
			m.sort = m.sort.Toggle()
			m.refreshPreview()
			return m, nil

		case key.Matches(msg, keys.Copy):
			m.copyCurrent()
			return m, nil

		case key.Matches(msg, keys.PreviewUp):
			m.preview.LineUp(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PreviewDn):
			m.preview.LineDown(m.panelHeight() / 2)
			return m, nil

		case key.Matches(msg, keys.PageUp):
			m.preview.LineUp(m.panelHeight())
			return m, nil

		case key.Matches(msg, keys.PageDown):
			m.preview.LineDown(m.panelHeight())
			return m, nil
		}
		return m, nil

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown {
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	listW := m.listWidth()
	previewW := m.previewWidth()
	panelH := m.panelHeight()

	titleRow := styleTitle.Render(m.title)

	listPanel := stylePanelBorder.
		Width(listW).
		Height(panelH).
		Render(m.renderList(listW, panelH))

	m.preview.Width = previewW
	m.preview.Height = panelH
	previewPanel := styleActiveBorder.
		Width(previewW).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, listPanel, previewPanel)

	return lipgloss.JoinVertical(lipgloss.Left, titleRow, panels, m.statusBar())
}

func (m *model) current() (group, bool) {
	if m.cursor < 0 || m.cursor >= len(m.groups) {
		return group{}, false
	}
	return m.groups[m.cursor], true
}

func (m *model) refreshPreview() {
	g, ok := m.current()
	if !ok {
		m.preview.SetContent("")
		return
	}
	m.preview.SetContent(renderGroup(g, m.sort))
	m.preview.GotoTop()
}

func (m *model) copyCurrent() {
	g, ok := m.current()
	if !ok {
		return
	}
	text, err := plainListing(g, m.sort)
	if err == nil {
		err = m.copyText(text)
	}
	if err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = fmt.Sprintf("Copied %d lines", len(g.stats))
}

// helper methods

func (m model) listWidth() int {
	if m.width <= 0 {
		return 24
	}
	// 25% for list, minus border padding
	w := m.width*25/100 - 4
	if w < 18 {
		w = 18
	}
	return w
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 76
	}
	w := m.width*75/100 - 4
	if w < 20 {
		w = 20
	}
	return w
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	// Subtract title row (1) + status bar (1) + borders (2)
	h := m.height - 4
	if h < 5 {
		h = 5
	}
	return h
}

func (m model) statusBar() string {
	var parts []string
	if g, ok := m.current(); ok {
		parts = append(parts, fmt.Sprintf("%s: %d authors", g.label, len(g.stats)))
	}
	parts = append(parts, "sort: "+m.sort.String())
	parts = append(parts, "up/dn select", "s sort", "C-u/C-d scroll", "enter copy", "esc quit")
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return styleStatusBar.Render(strings.Join(parts, " | "))
}
