package render

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/Zuo-Peng/chatstats/internal/stats"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/olekukonko/tablewriter"
)

const (
	plainTimeLayout = "2006-01-02 15:04:05 -07:00"
	tableTimeLayout = "2006-01-02 15:04:05"
)

var tableHeader = []string{"User", "Messages", "Words", "First", "percent_messages", "percent_words"}

// headingStyle is only used once color has been decided on, so its renderer
// never probes the output for a terminal.
var headingStyle = forcedRenderer().NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

func forcedRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.ANSI)
	return r
}

type Options struct {
	Sort   SortBy
	Pretty bool
}

// Sort returns a copy of stats ordered by the key, largest first.
// Equal keys fall back to the user name ascending.
func Sort(in []stats.Stat, by SortBy) []stats.Stat {
	out := slices.Clone(in)
	key := func(s stats.Stat) uint64 { return s.NumMessages }
	if by == SortWords {
		key = func(s stats.Stat) uint64 { return s.NumWords }
	}
	slices.SortFunc(out, func(a, b stats.Stat) int {
		if c := cmp.Compare(key(b), key(a)); c != 0 {
			return c
		}
		return cmp.Compare(a.User, b.User)
	})
	return out
}

// Render sorts stats and writes them as plain lines or a table.
func Render(w io.Writer, in []stats.Stat, opts Options) error {
	sorted := Sort(in, opts.Sort)
	if opts.Pretty {
		return Table(w, sorted)
	}
	return Plain(w, sorted)
}

// Plain writes one line per stat in the given order.
func Plain(w io.Writer, in []stats.Stat) error {
	for _, s := range in {
		_, err := fmt.Fprintf(w, "%s: %d msgs, %d words, first at %s, %.2f%% msgs, %.2f%% words\n",
			s.User,
			s.NumMessages,
			s.NumWords,
			s.FirstMessage.Format(plainTimeLayout),
			s.PercentMessages,
			s.PercentWords,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Table writes a bordered table in the given order.
func Table(w io.Writer, in []stats.Stat) error {
	if len(in) == 0 {
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(tableHeader)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)

	for _, s := range in {
		table.Append([]string{
			s.User,
			strconv.FormatUint(s.NumMessages, 10),
			strconv.FormatUint(s.NumWords, 10),
			s.FirstMessage.Format(tableTimeLayout),
			fmt.Sprintf("%.2f%%", s.PercentMessages),
			fmt.Sprintf("%.2f%%", s.PercentWords),
		})
	}
	table.Render()
	return nil
}

// Heading is the line printed above each year block.
func Heading(year int, color bool) string {
	h := fmt.Sprintf("=== Stats for %d ===", year)
	if color {
		return headingStyle.Render(h)
	}
	return h
}
