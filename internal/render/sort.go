package render

import "fmt"

// SortBy selects the primary key stats are ordered by.
type SortBy string

const (
	SortMessages SortBy = "messages"
	SortWords    SortBy = "words"
)

func (s SortBy) String() string {
	if s == "" {
		return string(SortMessages)
	}
	return string(s)
}

// Set implements pflag.Value.
func (s *SortBy) Set(v string) error {
	switch SortBy(v) {
	case SortMessages, SortWords:
		*s = SortBy(v)
		return nil
	default:
		return fmt.Errorf("must be %q or %q", SortMessages, SortWords)
	}
}

func (s *SortBy) Type() string {
	return "messages|words"
}

func (s *SortBy) UnmarshalText(text []byte) error {
	return s.Set(string(text))
}

// Toggle returns the other sort key.
func (s SortBy) Toggle() SortBy {
	if s == SortWords {
		return SortMessages
	}
	return SortWords
}
