// Package task defines the task variants tracked by duke.
package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/duke/internal/apperr"
)

// Date layouts.
const (
	ISODate     = "2006-01-02"
	DisplayDate = "Jan 02 2006"
)

// Kind identifies a task variant.
type Kind int

const (
	KindToDo Kind = iota
	KindDeadline
	KindEvent
)

// Letter returns the single-character tag used in rendered and saved form.
func (k Kind) Letter() string {
	switch k {
	case KindToDo:
		return "T"
	case KindDeadline:
		return "D"
	case KindEvent:
		return "E"
	default:
		panic(fmt.Sprintf("task: unknown kind %d", int(k)))
	}
}

// Dated reports whether tasks of this kind carry a date.
func (k Kind) Dated() bool {
	return k == KindDeadline || k == KindEvent
}

func (k Kind) String() string {
	switch k {
	case KindToDo:
		return "todo"
	case KindDeadline:
		return "deadline"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// KindFromLetter is the inverse of Kind.Letter.
func KindFromLetter(s string) (Kind, error) {
	switch s {
	case "T":
		return KindToDo, nil
	case "D":
		return KindDeadline, nil
	case "E":
		return KindEvent, nil
	default:
		return 0, fmt.Errorf("%w: %q", apperr.ErrUnknownKind, s)
	}
}

// Task is a single tracked item. The zero value is not usable; build one
// with NewToDo, NewDeadline or NewEvent.
type Task struct {
	kind  Kind
	title string
	done  bool
	date  time.Time // zero for KindToDo
}

// NewToDo returns an undated task.
func NewToDo(title string) *Task {
	return &Task{kind: KindToDo, title: title}
}

// NewDeadline returns a task due by the given date.
func NewDeadline(title string, due time.Time) *Task {
	return &Task{kind: KindDeadline, title: title, date: truncateDay(due)}
}

// NewEvent returns a task happening at the given date.
func NewEvent(title string, at time.Time) *Task {
	return &Task{kind: KindEvent, title: title, date: truncateDay(at)}
}

func (t *Task) Kind() Kind      { return t.kind }
func (t *Task) Title() string   { return t.title }
func (t *Task) Done() bool      { return t.done }
func (t *Task) Date() time.Time { return t.date }

// Complete marks the task done. Calling it again has no effect.
func (t *Task) Complete() {
	t.done = true
}

// TitleContains reports whether keyword is a case-sensitive substring of the title.
func (t *Task) TitleContains(keyword string) bool {
	return strings.Contains(t.title, keyword)
}

// String renders the task as "[K][m] title" plus a date suffix for dated kinds.
func (t *Task) String() string {
	mark := " "
	if t.done {
		mark = "x"
	}
	s := "[" + t.kind.Letter() + "][" + mark + "] " + t.title
	switch t.kind {
	case KindToDo:
	case KindDeadline:
		s += " (by: " + t.date.Format(DisplayDate) + ")"
	case KindEvent:
		s += " (at: " + t.date.Format(DisplayDate) + ")"
	}
	return s
}

// ParseDate parses an ISO calendar date. Failures are *apperr.DateError.
func ParseDate(text string) (time.Time, error) {
	d, err := time.Parse(ISODate, text)
	if err != nil {
		return time.Time{}, &apperr.DateError{Text: text, Err: err}
	}
	return d, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
