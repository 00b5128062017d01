package stats

import (
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/chatstats/internal/parse"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const tolerance = 0.01

func msg(author string, ts time.Time, text string) parse.Message {
	return parse.Message{Timestamp: ts, Author: author, Text: text}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

// sample is a small conversation with uneven shares and out-of-order times.
func sample() []parse.Message {
	return []parse.Message{
		msg("Alice", day(2023, 5, 2), "hello there everyone"),
		msg("Bob", day(2023, 5, 1), "hi"),
		msg("Carol", day(2024, 1, 3), ""),
		msg("Alice", day(2023, 4, 30), "earlier\nmulti line  body"),
		msg("Bob", day(2024, 2, 1), "  spaced\tout words "),
		msg("Dave", day(2022, 12, 31), "only one"),
	}
}

func byUser(stats []Stat) map[string]Stat {
	return lo.KeyBy(stats, func(s Stat) string { return s.User })
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		in   string
		want uint64
	}{
		{"", 0},
		{"   ", 0},
		{"one", 1},
		{"hello world", 2},
		{"line one\nstill alice", 4},
		{"tabs\tand\nnewlines\r\nmixed", 4},
		{"no\u00a0break\u2003em\u202fspace", 4},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, CountWords(tt.in), "input %q", tt.in)
	}
}

func TestAggregate_Basic(t *testing.T) {
	stats := Aggregate(sample())
	require.Len(t, stats, 4)

	got := byUser(stats)
	alice := got["Alice"]
	require.Equal(t, uint64(2), alice.NumMessages)
	require.Equal(t, uint64(7), alice.NumWords)
	require.True(t, alice.FirstMessage.Equal(day(2023, 4, 30)))

	bob := got["Bob"]
	require.Equal(t, uint64(2), bob.NumMessages)
	require.Equal(t, uint64(4), bob.NumWords)
	require.True(t, bob.FirstMessage.Equal(day(2023, 5, 1)))

	carol := got["Carol"]
	require.Equal(t, uint64(1), carol.NumMessages)
	require.Equal(t, uint64(0), carol.NumWords)
	require.Equal(t, 0.0, carol.PercentWords)

	require.InDelta(t, 100.0*2/6, alice.PercentMessages, tolerance)
	require.InDelta(t, 100.0*7/13, alice.PercentWords, tolerance)
}

func TestAggregate_Empty(t *testing.T) {
	require.Empty(t, Aggregate(nil))
	require.Empty(t, Aggregate([]parse.Message{}))
}

func TestAggregate_ZeroWords(t *testing.T) {
	stats := Aggregate([]parse.Message{
		msg("A", day(2024, 1, 1), ""),
		msg("B", day(2024, 1, 1), "   "),
	})
	require.Len(t, stats, 2)
	for _, s := range stats {
		require.Equal(t, 0.0, s.PercentWords)
		require.InDelta(t, 50.0, s.PercentMessages, tolerance)
	}
}

func TestAggregate_CountConservation(t *testing.T) {
	messages := sample()
	stats := Aggregate(messages)

	var sumMsgs, sumWords uint64
	for _, s := range stats {
		sumMsgs += s.NumMessages
		sumWords += s.NumWords
	}

	var wantWords uint64
	for _, m := range messages {
		wantWords += CountWords(m.Text)
	}
	require.Equal(t, uint64(len(messages)), sumMsgs)
	require.Equal(t, wantWords, sumWords)

	totals := Summarize(messages)
	require.Equal(t, sumMsgs, totals.Messages)
	require.Equal(t, sumWords, totals.Words)
	require.Equal(t, 4, totals.Authors)
	require.Equal(t, "messages=6 words=13 authors=4", totals.String())
}

func TestAggregate_PercentTotals(t *testing.T) {
	stats := Aggregate(sample())

	var pm, pw float64
	for _, s := range stats {
		pm += s.PercentMessages
		pw += s.PercentWords
	}
	require.InDelta(t, 100.0, pm, tolerance)
	require.InDelta(t, 100.0, pw, tolerance)
}

func TestAggregate_FirstSeenMinimality(t *testing.T) {
	messages := sample()
	for _, s := range Aggregate(messages) {
		matched := false
		for _, m := range messages {
			if m.Author != s.User {
				continue
			}
			require.False(t, m.Timestamp.Before(s.FirstMessage), "%s has an earlier message", s.User)
			if m.Timestamp.Equal(s.FirstMessage) {
				matched = true
			}
		}
		require.True(t, matched, "%s first message not among its messages", s.User)
	}
}

func TestAggregate_OrderIndependence(t *testing.T) {
	messages := sample()
	want := byUser(Aggregate(messages))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := slices.Clone(messages)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		got := byUser(Aggregate(shuffled))
		require.Len(t, got, len(want))
		for user, w := range want {
			g := got[user]
			require.Equal(t, w.NumMessages, g.NumMessages)
			require.Equal(t, w.NumWords, g.NumWords)
			require.True(t, w.FirstMessage.Equal(g.FirstMessage))
			require.InDelta(t, w.PercentMessages, g.PercentMessages, tolerance)
			require.InDelta(t, w.PercentWords, g.PercentWords, tolerance)
		}
	}
}

func TestGroupByYear_Ascending(t *testing.T) {
	groups := GroupByYear(sample())

	years := lo.Map(groups, func(g YearGroup, _ int) int { return g.Year })
	require.Equal(t, []int{2022, 2023, 2024}, years)

	require.Len(t, groups[1].Messages, 3)
	// input order is kept inside a group
	require.Equal(t, "Alice", groups[1].Messages[0].Author)
	require.Equal(t, "Bob", groups[1].Messages[1].Author)
	require.Equal(t, "Alice", groups[1].Messages[2].Author)
}

func TestGroupByYear_MatchesFilteredAggregate(t *testing.T) {
	messages := sample()
	for _, g := range GroupByYear(messages) {
		filtered := lo.Filter(messages, func(m parse.Message, _ int) bool {
			return m.Timestamp.Year() == g.Year
		})
		want := byUser(Aggregate(filtered))
		got := byUser(g.Stats)
		require.Equal(t, len(want), len(got))
		for user, w := range want {
			require.Equal(t, w.NumMessages, got[user].NumMessages)
			require.Equal(t, w.NumWords, got[user].NumWords)
			require.InDelta(t, w.PercentMessages, got[user].PercentMessages, tolerance)
			require.InDelta(t, w.PercentWords, got[user].PercentWords, tolerance)
		}
	}
}

func TestGroupByYear_YearBoundary(t *testing.T) {
	late := time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)
	early := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	messages := []parse.Message{
		msg("A", late, "one two"),
		msg("B", late, "three"),
		msg("A", early, "four"),
		msg("B", early, "five six seven"),
	}

	groups := GroupByYear(messages)
	require.Len(t, groups, 2)
	for _, g := range groups {
		var pm, pw float64
		var n uint64
		for _, s := range g.Stats {
			pm += s.PercentMessages
			pw += s.PercentWords
			n += s.NumMessages
		}
		require.Equal(t, uint64(2), n)
		require.InDelta(t, 100.0, pm, tolerance)
		require.InDelta(t, 100.0, pw, tolerance)
	}
}

func TestGroupByYear_Empty(t *testing.T) {
	require.Empty(t, GroupByYear(nil))
}

func TestAggregate_LargeConversation(t *testing.T) {
	var messages []parse.Message
	start := day(2020, 1, 1)
	for i := 0; i < 500; i++ {
		author := string(rune('A' + i%7))
		text := strings.Repeat("w ", i%5)
		messages = append(messages, msg(author, start.Add(time.Duration(i)*time.Hour), text))
	}

	stats := Aggregate(messages)
	require.Len(t, stats, 7)

	var pm float64
	for _, s := range stats {
		pm += s.PercentMessages
	}
	require.InDelta(t, 100.0, pm, tolerance)
}
