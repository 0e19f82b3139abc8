package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidID     = errors.New("model: invalid task id")
	ErrInvalidUserID = errors.New("model: invalid user id")
	ErrEmptyTitle    = errors.New("model: task title is required")
	ErrInvalidFilter = errors.New("model: invalid filter")
)

// PlaceholderID marks a task that has not been persisted yet.
const PlaceholderID = 0

type Task struct {
	ID        int    `json:"id"`
	UserID    int    `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// TaskPatch carries the subset of fields sent with an update.
type TaskPatch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func TitlePatch(title string) TaskPatch {
	return TaskPatch{Title: &title}
}

func CompletedPatch(completed bool) TaskPatch {
	return TaskPatch{Completed: &completed}
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Completed == nil
}

// Apply returns t with the patched fields replaced.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	return t
}

func (t Task) IsPlaceholder() bool {
	return t.ID == PlaceholderID
}

func (t Task) Validate() error {
	if t.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, t.ID)
	}
	if t.UserID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, t.UserID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

var Filters = []Filter{FilterAll, FilterActive, FilterCompleted}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterActive, FilterCompleted:
		return true
	default:
		return false
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterActive:
		return "Active"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles All -> Active -> Completed -> All.
func (f Filter) Next() Filter {
	switch f {
	case FilterAll:
		return FilterActive
	case FilterActive:
		return FilterCompleted
	default:
		return FilterAll
	}
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return FilterAll, fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

// Apply returns the tasks visible under f in a new slice.
func (f Filter) Apply(tasks []Task) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch f {
		case FilterActive:
			if t.Completed {
				continue
			}
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func ActiveCount(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every task is completed. An empty list counts as completed.
func AllCompleted(tasks []Task) bool {
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

func HasCompleted(tasks []Task) bool {
	for _, t := range tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

func IndexOf(tasks []Task, id int) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Without returns tasks minus the one with the given id.
func Without(tasks []Task, id int) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
