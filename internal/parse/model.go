package parse

import "time"

type Message struct {
	Timestamp time.Time // UTC, taken at face value from the header
	Author    string
	Text      string // trimmed body, may span several lines
	Line      int    // line number of the header in the transcript
}

// header is the parsed prefix of a header line.
type header struct {
	timestamp time.Time
	author    string
	line      int
}
