package stats

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/samber/lo"
)

// Stat is the aggregate for a single author.
type Stat struct {
	User            string
	NumMessages     uint64
	NumWords        uint64
	FirstMessage    time.Time
	PercentMessages float64
	PercentWords    float64
}

type Totals struct {
	Messages uint64
	Words    uint64
	Authors  int
}

func (t Totals) String() string {
	return fmt.Sprintf("messages=%d words=%d authors=%d", t.Messages, t.Words, t.Authors)
}

// YearGroup holds the messages of one calendar year and their stats.
type YearGroup struct {
	Year     int
	Messages []parse.Message
	Stats    []Stat
}

// CountWords counts maximal runs of non-whitespace.
func CountWords(text string) uint64 {
	return uint64(len(strings.Fields(text)))
}

func Summarize(messages []parse.Message) Totals {
	return Totals{
		Messages: uint64(len(messages)),
		Words:    totalWords(messages),
		Authors:  len(lo.UniqBy(messages, func(m parse.Message) string { return m.Author })),
	}
}

func totalWords(messages []parse.Message) uint64 {
	return lo.SumBy(messages, func(m parse.Message) uint64 { return CountWords(m.Text) })
}

// Aggregate folds messages into one Stat per author. Messages are visited in
// order so that the earliest timestamp wins and ties keep the first one seen.
// The result is unordered.
func Aggregate(messages []parse.Message) []Stat {
	totalMessages := uint64(len(messages))
	total := totalWords(messages)

	byUser := make(map[string]*Stat)
	for _, m := range messages {
		s, ok := byUser[m.Author]
		if !ok {
			s = &Stat{User: m.Author, FirstMessage: m.Timestamp}
			byUser[m.Author] = s
		}
		s.NumMessages++
		s.NumWords += CountWords(m.Text)
		if m.Timestamp.Before(s.FirstMessage) {
			s.FirstMessage = m.Timestamp
		}
	}

	result := make([]Stat, 0, len(byUser))
	for _, s := range byUser {
		s.PercentMessages = percent(s.NumMessages, totalMessages)
		s.PercentWords = percent(s.NumWords, total)
		result = append(result, *s)
	}
	return result
}

func percent(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// GroupByYear partitions messages by the UTC calendar year of their timestamp
// and aggregates each partition on its own. Groups come back in ascending
// year order; percentages are relative to the group.
func GroupByYear(messages []parse.Message) []YearGroup {
	byYear := lo.GroupBy(messages, func(m parse.Message) int {
		return m.Timestamp.UTC().Year()
	})

	years := lo.Keys(byYear)
	slices.Sort(years)

	groups := make([]YearGroup, 0, len(years))
	for _, year := range years {
		msgs := byYear[year]
		groups = append(groups, YearGroup{
			Year:     year,
			Messages: msgs,
			Stats:    Aggregate(msgs),
		})
	}
	return groups
}
