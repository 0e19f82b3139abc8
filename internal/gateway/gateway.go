// Package gateway is the client side of the remote todo collection.
package gateway

import (
	"context"

	"github.com/sandeepkv93/todosync/internal/model"
)

// Gateway issues list/create/update/delete calls against the remote collection.
// Callers treat any returned error as opaque.
type Gateway interface {
	List(ctx context.Context, userID int) ([]model.Task, error)
	Create(ctx context.Context, title string, userID int, completed bool) (model.Task, error)
	Remove(ctx context.Context, id int) error
	Patch(ctx context.Context, id int, patch model.TaskPatch) (model.Task, error)
}
