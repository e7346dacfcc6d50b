// Package ui is the interactive line-oriented front end.
package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starford/duke/internal/apperr"
	"github.com/starford/duke/internal/parser"
	"github.com/starford/duke/internal/storage"
	"github.com/starford/duke/internal/tasklist"
)

const (
	Greeting = "Hello! I'm Duke\nWhat can I do for you?"
	Farewell = "Bye. Hope to see you again soon!"

	MsgBadDate = "Please give the date in the format YYYY-MM-DD!"

	dividerWidth = 60
)

// Session reads commands one line at a time and applies them to a list.
type Session struct {
	list   *tasklist.TaskList
	store  storage.Provider
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	divider  string
	errStyle lipgloss.Style
}

// NewSession wires a session. store may be nil, in which case nothing is saved.
func NewSession(list *tasklist.TaskList, store storage.Provider, in io.Reader, out io.Writer, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	r := lipgloss.NewRenderer(out)
	return &Session{
		list:     list,
		store:    store,
		in:       in,
		out:      out,
		logger:   logger,
		divider:  r.NewStyle().Faint(true).Render(strings.Repeat("_", dividerWidth)),
		errStyle: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
}

// Run prints the greeting and processes lines until "bye", end of input or
// ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.print(Greeting)

	sc := bufio.NewScanner(s.in)
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		resp, bye, err := s.Handle(ctx, line)
		if err != nil {
			s.print(s.errStyle.Render("OOPS!!!") + " " + userMessage(err))
			continue
		}
		s.print(resp)
		if bye {
			return nil
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("ui: read input: %w", err)
	}
	s.logger.Info("input closed")
	return nil
}

// Handle applies a single input line. bye reports that the session should end.
// Errors are user errors; the list is left unchanged when one is returned.
func (s *Session) Handle(ctx context.Context, line string) (resp string, bye bool, err error) {
	cmd, err := parser.Parse(line)
	if err != nil {
		return "", false, err
	}

	mutated := true
	switch cmd.Op {
	case parser.OpList:
		resp, mutated = s.list.String(), false
	case parser.OpFind:
		resp, mutated = s.list.FindTasks(cmd.Keyword), false
	case parser.OpBye:
		return Farewell, true, nil
	case parser.OpTodo:
		resp = s.list.AddNewTodo(cmd.Title)
	case parser.OpDeadline:
		resp, err = s.list.AddNewDeadline(cmd.Raw)
	case parser.OpEvent:
		resp, err = s.list.AddNewEvent(cmd.Raw)
	case parser.OpDone:
		resp, err = s.list.CompleteTask(cmd.Index)
	case parser.OpDelete:
		resp, err = s.list.DeleteTask(cmd.Index)
	default:
		return "", false, fmt.Errorf("ui: unhandled command %d", cmd.Op)
	}
	if err != nil {
		return "", false, err
	}

	if mutated && s.store != nil {
		if err := s.store.Save(ctx, s.list); err != nil {
			s.logger.Error("save failed", slog.String("error", err.Error()))
			resp += "\n(I couldn't save your tasks: " + err.Error() + ")"
		}
	}
	return resp, false, nil
}

func (s *Session) print(msg string) {
	fmt.Fprintf(s.out, "%s\n%s\n%s\n", s.divider, msg, s.divider)
}

func userMessage(err error) string {
	var ue *apperr.UsageError
	switch {
	case errors.As(err, &ue):
		return ue.Message
	case apperr.IsDate(err):
		return MsgBadDate
	default:
		return err.Error()
	}
}
