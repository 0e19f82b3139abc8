package storage

import "time"

type Todo struct {
	ID        int
	UserID    int
	Title     string
	Completed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TodoPatch updates only the non-nil fields.
type TodoPatch struct {
	Title     *string
	Completed *bool
}

type TodoListFilter struct {
	UserID    int
	Completed *bool
	Limit     int
	Offset    int
}
