package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/chatstats/internal/render"
	"github.com/Zuo-Peng/chatstats/internal/stats"
)

// renderGroup renders the right panel content for a group.
func renderGroup(g group, by render.SortBy) string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("%s, sorted by %s", g.label, by)))
	b.WriteString("\n")
	b.WriteString(styleListCount.Render(stats.Summarize(g.messages).String()))
	b.WriteString("\n\n")
	if err := render.Table(&b, render.Sort(g.stats, by)); err != nil {
		return "Render error: " + err.Error()
	}
	return b.String()
}

// plainListing is what gets copied to the clipboard.
func plainListing(g group, by render.SortBy) (string, error) {
	var b strings.Builder
	if err := render.Plain(&b, render.Sort(g.stats, by)); err != nil {
		return "", err
	}
	return b.String(), nil
}
