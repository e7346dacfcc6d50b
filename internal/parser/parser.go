// Package parser turns one line of user input into a command.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/starford/duke/internal/apperr"
	"github.com/starford/duke/internal/task"
)

// Markers separating a title from its date.
const (
	MarkerBy = "/by"
	MarkerAt = "/at"
)

// User-facing messages.
const (
	MsgNoEvent   = "You need to specify which event you want to add!"
	MsgNoDate    = "You need to provide a date/time! Format: YYYY-MM-DD"
	MsgNoTask    = "You need to provide a task!"
	MsgNoIndex   = "You need to give a task number!"
	MsgNoKeyword = "You need to give a keyword to search for!"
	MsgUnknown   = "I'm sorry, but I don't know what that means :-("
)

var indexRe = regexp.MustCompile(`^\s*(-?\d+)\s*$`)

// Op is the operation a command asks for.
type Op int

const (
	OpList Op = iota
	OpTodo
	OpDeadline
	OpEvent
	OpDone
	OpDelete
	OpFind
	OpBye
)

// Command is a parsed input line. Only the fields relevant to Op are set.
type Command struct {
	Op      Op
	Raw     string // whole line, for OpDeadline and OpEvent
	Title   string // OpTodo
	Index   int    // 1-based, OpDone and OpDelete
	Keyword string // OpFind
}

// Parse determines the operation requested by line.
func Parse(line string) (Command, error) {
	word, rest, _ := strings.Cut(line, " ")

	switch word {
	case "list":
		return Command{Op: OpList}, nil
	case "bye":
		return Command{Op: OpBye}, nil
	case "todo", "t":
		if strings.TrimSpace(rest) == "" {
			return Command{}, apperr.Usage(MsgNoTask)
		}
		return Command{Op: OpTodo, Title: rest}, nil
	case "d":
		return Command{Op: OpDeadline, Raw: line}, nil
	case "e":
		return Command{Op: OpEvent, Raw: line}, nil
	case "done", "delete":
		n, err := parseIndex(rest)
		if err != nil {
			return Command{}, err
		}
		op := OpDone
		if word == "delete" {
			op = OpDelete
		}
		return Command{Op: op, Index: n}, nil
	case "find":
		if rest == "" {
			return Command{}, apperr.Usage(MsgNoKeyword)
		}
		return Command{Op: OpFind, Keyword: rest}, nil
	default:
		return Command{}, apperr.Usage(MsgUnknown)
	}
}

func parseIndex(s string) (int, error) {
	m := indexRe.FindStringSubmatch(s)
	if m == nil {
		return 0, apperr.Usage(MsgNoIndex)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, apperr.Usage(MsgNoIndex)
	}
	return n, nil
}

// Dated is the result of splitting a deadline or event line.
type Dated struct {
	// ValidatedTitle is the trimmed text before the marker. It is only
	// checked for emptiness.
	ValidatedTitle string
	// StoredTitle is the raw line up to the marker, untrimmed and still
	// carrying the command token. This is the title the task is created with.
	StoredTitle string
	Date        time.Time
}

// SplitDated splits a raw "d <title> /by <date>" style line. token is the
// one-letter command ("d" or "e") and marker the date marker.
func SplitDated(raw, token, marker string) (Dated, error) {
	const detailsStart = 2

	if raw == token || len(raw) < detailsStart {
		return Dated{}, apperr.Usage(MsgNoEvent)
	}
	details := raw[detailsStart:]

	parts := splitDropTrailingEmpty(details, marker)
	if len(parts) <= 1 {
		return Dated{}, apperr.Usage(MsgNoDate)
	}
	validated := strings.TrimSpace(parts[0])
	if validated == "" {
		return Dated{}, apperr.Usage(MsgNoTask)
	}

	// The date is located independently, on the raw line.
	var dateText string
	start := strings.Index(raw, marker+" ")
	if start >= 0 {
		dateText = raw[start+len(marker)+1:]
	}
	date, err := task.ParseDate(dateText)
	if err != nil {
		return Dated{}, err
	}

	return Dated{
		ValidatedTitle: validated,
		StoredTitle:    raw[:start],
		Date:           date,
	}, nil
}

// splitDropTrailingEmpty splits s on sep and discards trailing empty parts,
// so "x /by" yields a single part.
func splitDropTrailingEmpty(s, sep string) []string {
	parts := strings.Split(s, sep)
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
