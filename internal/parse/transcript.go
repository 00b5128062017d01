package parse

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	narrowNBSP      = "\u202f"
	timestampLayout = "1/2/06 3:04:05 PM"
)

// headerRe matches "[1/2/24, 9:05:07 AM] Author: text" at line start.
// Groups: date, clock, meridiem, author, rest.
var headerRe = regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2}), (\d{1,2}:\d{2}:\d{2})` + narrowNBSP + `([AP]M)\] (.+?): (.*)`)

var (
	ErrParseHeader = errors.New("malformed message header")
	errHourZero    = errors.New("hour must be between 1 and 12")
)

// HeaderError reports a header line whose date or time could not be parsed.
type HeaderError struct {
	Line   int
	Header string
	Err    error
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("line %d: %v %q: %v", e.Line, ErrParseHeader, e.Header, e.Err)
}

func (e *HeaderError) Unwrap() error {
	return e.Err
}

func (e *HeaderError) Is(target error) bool {
	return target == ErrParseHeader
}

// Extract rebuilds the ordered list of messages from transcript text.
// Lines before the first header are ignored; every other non-header line
// continues the body of the message above it.
func Extract(text string) ([]Message, error) {
	var messages []Message
	var current *header
	var body strings.Builder

	flush := func() {
		if current == nil {
			return
		}
		messages = append(messages, Message{
			Timestamp: current.timestamp,
			Author:    current.author,
			Text:      strings.TrimSpace(body.String()),
			Line:      current.line,
		})
	}

	lineNum := 0
	for line := range strings.Lines(text) {
		lineNum++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		caps := headerRe.FindStringSubmatch(line)
		if caps == nil {
			// prelude before the first header is dropped
			if current != nil {
				body.WriteByte('\n')
				body.WriteString(line)
			}
			continue
		}

		ts, err := parseTimestamp(caps[1], caps[2], caps[3])
		if err != nil {
			return nil, &HeaderError{Line: lineNum, Header: line, Err: err}
		}

		flush()
		current = &header{timestamp: ts, author: caps[4], line: lineNum}
		body.Reset()
		body.WriteString(caps[5])
	}
	flush()

	return messages, nil
}

// parseTimestamp reads the header date and clock as a UTC instant.
// Two-digit years follow the time package rule: 69-99 map to 19xx,
// 00-68 to 20xx. The hour is on a 12-hour clock, so 0 is rejected.
func parseTimestamp(date, clock, meridiem string) (time.Time, error) {
	hour, _, _ := strings.Cut(clock, ":")
	if h, err := strconv.Atoi(hour); err == nil && h == 0 {
		return time.Time{}, errHourZero
	}
	raw := date + " " + clock + narrowNBSP + meridiem
	normalized := strings.ReplaceAll(raw, narrowNBSP, " ")
	return time.Parse(timestampLayout, normalized)
}
