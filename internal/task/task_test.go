package task

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/duke/internal/apperr"
)

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := ParseDate(s)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", s, err)
	}
	return d
}

func TestDeadline_Render(t *testing.T) {
	d := NewDeadline("Submission", mustDate(t, "2021-02-11"))
	want := "[D][ ] Submission (by: Feb 11 2021)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestDeadline_CompleteMarksDone(t *testing.T) {
	d := NewDeadline("Submission", mustDate(t, "2021-02-11"))
	d.Complete()
	want := "[D][x] Submission (by: Feb 11 2021)"
	if got := d.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	d.Complete()
	if got := d.String(); got != want {
		t.Errorf("second Complete changed render: %q", got)
	}
}

func TestToDoAndEvent_Render(t *testing.T) {
	todo := NewToDo("read book")
	if got := todo.String(); got != "[T][ ] read book" {
		t.Errorf("todo = %q", got)
	}
	ev := NewEvent("party", mustDate(t, "2021-12-03"))
	if got := ev.String(); got != "[E][ ] party (at: Dec 03 2021)" {
		t.Errorf("event = %q", got)
	}
}

func TestTitleContains_CaseSensitive(t *testing.T) {
	task := NewToDo("buy Milk")
	if task.TitleContains("milk") {
		t.Error("match should be case-sensitive")
	}
	if !task.TitleContains("Milk") {
		t.Error("expected substring match")
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, s := range []string{"", "tomorrow", "2021-2-11", "2021-02-30", "11/02/2021"} {
		_, err := ParseDate(s)
		if err == nil {
			t.Errorf("ParseDate(%q) should fail", s)
			continue
		}
		if !apperr.IsDate(err) {
			t.Errorf("ParseDate(%q) error %v is not a DateError", s, err)
		}
	}
}

func TestSaveData_Format(t *testing.T) {
	d := NewDeadline("Submission", mustDate(t, "2021-02-11"))
	d.Complete()
	if got := d.SaveData(); got != "D | 1 | Submission | 2021-02-11\n" {
		t.Errorf("SaveData = %q", got)
	}
	if got := NewToDo("x").SaveData(); got != "T | 0 | x\n" {
		t.Errorf("SaveData = %q", got)
	}
}

func TestDecode_RoundTripPreservesRender(t *testing.T) {
	done := NewEvent("d talk | q&a ", mustDate(t, "2022-01-05"))
	done.Complete()
	tasks := []*Task{
		NewToDo("plain"),
		NewDeadline("d return book ", mustDate(t, "2021-02-11")),
		done,
	}
	for _, orig := range tasks {
		got, err := Decode(orig.SaveData())
		if err != nil {
			t.Fatalf("Decode(%q): %v", orig.SaveData(), err)
		}
		if got.String() != orig.String() {
			t.Errorf("render after decode = %q, want %q", got.String(), orig.String())
		}
	}
}

func TestDecode_Corrupt(t *testing.T) {
	cases := map[string]error{
		"T | 0":           apperr.ErrCorruptRecord,
		"X | 0 | title":   apperr.ErrUnknownKind,
		"T | 2 | title":   apperr.ErrCorruptRecord,
		"D | 0 | no date": apperr.ErrCorruptRecord,
		"T | 0 | ":        apperr.ErrCorruptRecord,
	}
	for line, want := range cases {
		_, err := Decode(line)
		if !errors.Is(err, want) {
			t.Errorf("Decode(%q) = %v, want %v", line, err, want)
		}
	}

	_, err := Decode("E | 0 | party | 2021-13-01")
	if !apperr.IsDate(err) {
		t.Errorf("bad date should surface a DateError, got %v", err)
	}
}
