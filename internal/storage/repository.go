package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrEmptyPatch = errors.New("storage: empty patch")
)

type Repository interface {
	CreateTodo(ctx context.Context, in Todo) (Todo, error)
	GetTodo(ctx context.Context, id int) (Todo, error)
	PatchTodo(ctx context.Context, id int, patch TodoPatch, at time.Time) (Todo, error)
	DeleteTodo(ctx context.Context, id int) error
	ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error)
}
