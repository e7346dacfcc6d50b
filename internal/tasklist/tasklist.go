// Package tasklist owns the ordered collection of tasks and the
// command-level operations that mutate it.
package tasklist

import (
	"bufio"
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/starford/duke/internal/apperr"
	"github.com/starford/duke/internal/parser"
	"github.com/starford/duke/internal/task"
)

const (
	listHeader  = "Here are the tasks in your list:"
	addedPrefix = "Got it. I've added this task:\n\t"

	msgNoSuchDone   = "The task you are trying to mark done does not exist. :("
	msgNoSuchDelete = "The task you are trying to delete does not exist. :("
)

// TaskList is an ordered list of tasks. Position i (0-based) is shown to
// the user as i+1. A TaskList is not safe for concurrent use.
type TaskList struct {
	tasks []*task.Task
}

// New returns an empty list.
func New() *TaskList {
	return &TaskList{}
}

// AddTask appends an existing task.
func (l *TaskList) AddTask(t *task.Task) {
	l.tasks = append(l.tasks, t)
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// Tasks returns the tasks in display order. The slice is a copy; the
// tasks are not.
func (l *TaskList) Tasks() []*task.Task {
	out := make([]*task.Task, len(l.tasks))
	copy(out, l.tasks)
	return out
}

// AddNewTodo appends a ToDo with title used verbatim.
func (l *TaskList) AddNewTodo(title string) string {
	t := task.NewToDo(title)
	l.tasks = append(l.tasks, t)
	return addedPrefix + t.String() + l.CountTasks()
}

// AddNewDeadline parses a raw "d <title> /by <YYYY-MM-DD>" line and
// appends the resulting Deadline.
func (l *TaskList) AddNewDeadline(raw string) (string, error) {
	d, err := parser.SplitDated(raw, "d", parser.MarkerBy)
	if err != nil {
		return "", err
	}
	t := task.NewDeadline(d.StoredTitle, d.Date)
	l.tasks = append(l.tasks, t)
	return addedPrefix + t.String() + l.CountTasks(), nil
}

// AddNewEvent parses a raw "e <title> /at <YYYY-MM-DD>" line and appends
// the resulting Event.
func (l *TaskList) AddNewEvent(raw string) (string, error) {
	d, err := parser.SplitDated(raw, "e", parser.MarkerAt)
	if err != nil {
		return "", err
	}
	t := task.NewEvent(d.StoredTitle, d.Date)
	l.tasks = append(l.tasks, t)
	return addedPrefix + t.String() + l.CountTasks(), nil
}

// CompleteTask marks the n-th (1-based) task done.
func (l *TaskList) CompleteTask(n int) (string, error) {
	if n < 1 || n > len(l.tasks) {
		return "", apperr.Usage(msgNoSuchDone)
	}
	t := l.tasks[n-1]
	t.Complete()
	return "Nice! I've marked this task as done:\n\t" + t.String(), nil
}

// DeleteTask removes the n-th (1-based) task.
func (l *TaskList) DeleteTask(n int) (string, error) {
	if n < 1 || n > len(l.tasks) {
		return "", apperr.Usage(msgNoSuchDelete)
	}
	t := l.tasks[n-1]
	l.tasks = slices.Delete(l.tasks, n-1, n)
	return "Noted. I've removed this task:\n\t" + t.String() + l.CountTasks(), nil
}

// FindTasks lists the tasks whose title contains keyword, numbered from 1
// in their original relative order. The result is a rendered snapshot.
func (l *TaskList) FindTasks(keyword string) string {
	filtered := New()
	for _, t := range l.tasks {
		if t.TitleContains(keyword) {
			filtered.AddTask(t)
		}
	}
	return fmt.Sprintf("I've filtered tasks containing '%s'.\n", keyword) + filtered.String()
}

// CountTasks returns the "Now you have N tasks" line, with a leading newline.
func (l *TaskList) CountTasks() string {
	return fmt.Sprintf("\nNow you have %d tasks in the list.", len(l.tasks))
}

// String renders the numbered list.
func (l *TaskList) String() string {
	var b strings.Builder
	b.WriteString(listHeader)
	for i, t := range l.tasks {
		b.WriteString("\n")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(".")
		b.WriteString(t.String())
	}
	return b.String()
}

// SaveData concatenates the save line of every task in order.
func (l *TaskList) SaveData() string {
	var b strings.Builder
	for _, t := range l.tasks {
		b.WriteString(t.SaveData())
	}
	return b.String()
}

// FromSaveData rebuilds a list from the output of SaveData. Blank lines are
// skipped; the first bad line aborts the load.
func FromSaveData(data []byte) (*TaskList, error) {
	l := New()
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		t, err := task.Decode(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		l.AddTask(t)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return l, nil
}
