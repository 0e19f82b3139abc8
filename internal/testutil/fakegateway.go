// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/sandeepkv93/todosync/internal/gateway"
	"github.com/sandeepkv93/todosync/internal/model"
)

var _ gateway.Gateway = (*FakeGateway)(nil)

// ErrNotFound is returned when a todo id is unknown.
var ErrNotFound = errors.New("not found")

// ErrInjected is a convenient error for failure injection.
var ErrInjected = errors.New("injected failure")

// Call records one gateway invocation.
type Call struct {
	Op    string
	ID    int
	Title string
	Patch model.TaskPatch
}

// FakeGateway is an in-memory implementation of gateway.Gateway for testing.
type FakeGateway struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
	calls  []Call

	// Error injection for testing
	ListErr   error
	CreateErr error
	RemoveErr map[int]error // id -> error
	PatchErr  map[int]error // id -> error

	// PatchCompleted forces the completed value the server reports back for an id.
	PatchCompleted map[int]bool
}

// NewFakeGateway creates a FakeGateway seeded with tasks.
func NewFakeGateway(seed ...model.Task) *FakeGateway {
	f := &FakeGateway{
		nextID:         1,
		RemoveErr:      make(map[int]error),
		PatchErr:       make(map[int]error),
		PatchCompleted: make(map[int]bool),
	}
	for _, t := range seed {
		f.tasks = append(f.tasks, t)
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

// Tasks returns a copy of the stored todos.
func (f *FakeGateway) Tasks() []model.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Task(nil), f.tasks...)
}

// Calls returns a copy of the recorded calls.
func (f *FakeGateway) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CallCount returns how many calls of op were made.
func (f *FakeGateway) CallCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// List implements gateway.Gateway.
func (f *FakeGateway) List(ctx context.Context, userID int) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "list"})
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]model.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

// Create implements gateway.Gateway.
func (f *FakeGateway) Create(ctx context.Context, title string, userID int, completed bool) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "create", Title: title})
	if f.CreateErr != nil {
		return model.Task{}, f.CreateErr
	}
	t := model.Task{ID: f.nextID, UserID: userID, Title: title, Completed: completed}
	f.nextID++
	f.tasks = append(f.tasks, t)
	return t, nil
}

// Remove implements gateway.Gateway.
func (f *FakeGateway) Remove(ctx context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "remove", ID: id})
	if err := f.RemoveErr[id]; err != nil {
		return err
	}
	idx := model.IndexOf(f.tasks, id)
	if idx < 0 {
		return ErrNotFound
	}
	f.tasks = append(f.tasks[:idx], f.tasks[idx+1:]...)
	return nil
}

// Patch implements gateway.Gateway.
func (f *FakeGateway) Patch(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Op: "patch", ID: id, Patch: patch})
	if err := f.PatchErr[id]; err != nil {
		return model.Task{}, err
	}
	idx := model.IndexOf(f.tasks, id)
	if idx < 0 {
		return model.Task{}, ErrNotFound
	}
	updated := patch.Apply(f.tasks[idx])
	if forced, ok := f.PatchCompleted[id]; ok {
		updated.Completed = forced
	}
	f.tasks[idx] = updated
	return updated, nil
}
