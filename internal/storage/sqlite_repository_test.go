package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "todosync-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTodoCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	todo, err := repo.CreateTodo(ctx, Todo{UserID: 970, Title: "Write schema", CreatedAt: created})
	if err != nil {
		t.Fatalf("create todo: %v", err)
	}
	if todo.ID <= 0 {
		t.Fatalf("expected assigned id, got %d", todo.ID)
	}

	got, err := repo.GetTodo(ctx, todo.ID)
	if err != nil {
		t.Fatalf("get todo: %v", err)
	}
	if got.Title != "Write schema" || got.Completed || !got.CreatedAt.Equal(created) {
		t.Fatalf("unexpected todo get result: %#v", got)
	}

	done := true
	updatedAt := parseRFC3339(t, "2026-02-09T13:00:00Z")
	patched, err := repo.PatchTodo(ctx, todo.ID, TodoPatch{Completed: &done}, updatedAt)
	if err != nil {
		t.Fatalf("patch todo: %v", err)
	}
	if !patched.Completed || patched.Title != "Write schema" || !patched.UpdatedAt.Equal(updatedAt) {
		t.Fatalf("unexpected patched todo: %#v", patched)
	}

	completed, err := repo.ListTodos(ctx, TodoListFilter{UserID: 970, Completed: &done})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != todo.ID {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("delete todo: %v", err)
	}
	_, err = repo.GetTodo(ctx, todo.ID)
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteTodo(ctx, todo.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestListTodosScopesByUserAndPaginates(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	for i, user := range []int{1, 2, 1, 1} {
		title := []string{"a", "b", "c", "d"}[i]
		if _, err := repo.CreateTodo(ctx, Todo{UserID: user, Title: title}); err != nil {
			t.Fatalf("create todo %s: %v", title, err)
		}
	}

	mine, err := repo.ListTodos(ctx, TodoListFilter{UserID: 1})
	if err != nil {
		t.Fatalf("list todos: %v", err)
	}
	if len(mine) != 3 || mine[0].Title != "a" || mine[2].Title != "d" {
		t.Fatalf("unexpected user list: %#v", mine)
	}

	page, err := repo.ListTodos(ctx, TodoListFilter{UserID: 1, Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("list page: %v", err)
	}
	if len(page) != 1 || page[0].Title != "c" {
		t.Fatalf("unexpected page: %#v", page)
	}

	tail, err := repo.ListTodos(ctx, TodoListFilter{UserID: 1, Offset: 2})
	if err != nil {
		t.Fatalf("list offset only: %v", err)
	}
	if len(tail) != 1 || tail[0].Title != "d" {
		t.Fatalf("unexpected offset-only page: %#v", tail)
	}
}

func TestPatchTodoErrors(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	if _, err := repo.PatchTodo(ctx, 1, TodoPatch{}, time.Time{}); err != ErrEmptyPatch {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
	title := "missing"
	if _, err := repo.PatchTodo(ctx, 99, TodoPatch{Title: &title}, time.Time{}); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.CreateTodo(ctx, Todo{UserID: 1, Title: "  "}); err == nil {
		t.Fatal("expected blank title to be rejected")
	}
}
