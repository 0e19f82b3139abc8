package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

const todoColumns = `id, user_id, title, completed, created_at, updated_at`

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

// OpenSQLite opens the database at path and applies pending migrations.
func OpenSQLite(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps concurrent PATCH/DELETE bursts from failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) CreateTodo(ctx context.Context, in Todo) (Todo, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Todo{}, errors.New("storage: todo title is required")
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = in.CreatedAt
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO todos (user_id, title, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		in.UserID, in.Title, boolInt(in.Completed), mustTime(in.CreatedAt), mustTime(in.UpdatedAt),
	)
	if err != nil {
		return Todo{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Todo{}, fmt.Errorf("last insert id: %w", err)
	}
	in.ID = int(id)
	return in, nil
}

func (r *SQLiteRepository) GetTodo(ctx context.Context, id int) (Todo, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = ?`, id)
	todo, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Todo{}, ErrNotFound
		}
		return Todo{}, err
	}
	return todo, nil
}

func (r *SQLiteRepository) PatchTodo(ctx context.Context, id int, patch TodoPatch, at time.Time) (Todo, error) {
	sets := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if patch.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *patch.Title)
	}
	if patch.Completed != nil {
		sets = append(sets, "completed = ?")
		args = append(args, boolInt(*patch.Completed))
	}
	if len(sets) == 0 {
		return Todo{}, ErrEmptyPatch
	}
	if at.IsZero() {
		at = time.Now().UTC()
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, mustTime(at), id)

	res, err := r.db.ExecContext(ctx, `UPDATE todos SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return Todo{}, err
	}
	if err := checkRowsAffected(res); err != nil {
		return Todo{}, err
	}
	return r.GetTodo(ctx, id)
}

func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoListFilter) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos`
	where := make([]string, 0, 2)
	args := make([]any, 0, 4)
	if filter.UserID > 0 {
		where = append(where, "user_id = ?")
		args = append(args, filter.UserID)
	}
	if filter.Completed != nil {
		where = append(where, "completed = ?")
		args = append(args, boolInt(*filter.Completed))
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY id ASC`
	query += applyPagination(&args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Todo, 0)
	for rows.Next() {
		todo, scanErr := scanTodo(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, todo)
	}
	return out, rows.Err()
}

func mustTime(v time.Time) string {
	return v.UTC().Format(sqliteTimeLayout)
}

func parseRequiredTime(v string) (time.Time, error) {
	return time.Parse(sqliteTimeLayout, v)
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

func applyPagination(args *[]any, limit, offset int) string {
	sql := ""
	if limit > 0 {
		sql += " LIMIT ?"
		*args = append(*args, limit)
	} else if offset > 0 {
		// SQLite only accepts OFFSET after a LIMIT clause.
		sql += " LIMIT -1"
	}
	if offset > 0 {
		sql += " OFFSET ?"
		*args = append(*args, offset)
	}
	return sql
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (Todo, error) {
	var out Todo
	var completed int
	var created string
	var updated string
	if err := s.Scan(&out.ID, &out.UserID, &out.Title, &completed, &created, &updated); err != nil {
		return Todo{}, err
	}
	createdAt, err := parseRequiredTime(created)
	if err != nil {
		return Todo{}, err
	}
	updatedAt, err := parseRequiredTime(updated)
	if err != nil {
		return Todo{}, err
	}
	out.Completed = completed == 1
	out.CreatedAt = createdAt
	out.UpdatedAt = updatedAt
	return out, nil
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
