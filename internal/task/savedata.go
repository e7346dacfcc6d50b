package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/starford/duke/internal/apperr"
)

// FieldSep separates fields of a save line.
const FieldSep = " | "

// SaveData encodes the task as one newline-terminated line:
//
//	T | 0 | title
//	D | 1 | title | 2021-02-11
//
// The date is always the last field, so titles may contain FieldSep.
func (t *Task) SaveData() string {
	done := "0"
	if t.done {
		done = "1"
	}
	line := t.kind.Letter() + FieldSep + done + FieldSep + t.title
	if t.kind.Dated() {
		line += FieldSep + t.date.Format(ISODate)
	}
	return line + "\n"
}

// Restore rebuilds a task from its stored fields.
func Restore(kind Kind, done bool, title string, date time.Time) (*Task, error) {
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", apperr.ErrCorruptRecord)
	}
	var t *Task
	switch kind {
	case KindToDo:
		t = NewToDo(title)
	case KindDeadline:
		t = NewDeadline(title, date)
	case KindEvent:
		t = NewEvent(title, date)
	default:
		return nil, fmt.Errorf("%w: %d", apperr.ErrUnknownKind, int(kind))
	}
	t.done = done
	return t, nil
}

// Decode parses one line produced by SaveData. A trailing newline is optional.
func Decode(line string) (*Task, error) {
	line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")

	parts := strings.SplitN(line, FieldSep, 3)
	if len(parts) < 3 {
		return nil, fmt.Errorf("%w: %q", apperr.ErrCorruptRecord, line)
	}
	kind, err := KindFromLetter(parts[0])
	if err != nil {
		return nil, err
	}
	var done bool
	switch parts[1] {
	case "0":
	case "1":
		done = true
	default:
		return nil, fmt.Errorf("%w: bad done flag %q", apperr.ErrCorruptRecord, parts[1])
	}

	title := parts[2]
	var date time.Time
	if kind.Dated() {
		i := strings.LastIndex(title, FieldSep)
		if i < 0 {
			return nil, fmt.Errorf("%w: missing date in %q", apperr.ErrCorruptRecord, line)
		}
		date, err = ParseDate(title[i+len(FieldSep):])
		if err != nil {
			return nil, err
		}
		title = title[:i]
	}
	return Restore(kind, done, title, date)
}
