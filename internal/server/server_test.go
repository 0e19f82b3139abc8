package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/sandeepkv93/todosync/internal/gateway"
	"github.com/sandeepkv93/todosync/internal/model"
	"github.com/sandeepkv93/todosync/internal/storage"
)

func setupServer(t *testing.T) (*httptest.Server, *gateway.Client) {
	t.Helper()
	repo, err := storage.OpenSQLite(filepath.Join(t.TempDir(), "server-test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(New(repo, logger).Handler())
	t.Cleanup(srv.Close)
	return srv, gateway.NewClient(srv.URL)
}

func TestGatewayRoundTripAgainstServer(t *testing.T) {
	_, client := setupServer(t)
	ctx := context.Background()

	first, err := client.Create(ctx, "  write tests  ", 970, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID <= 0 || first.Title != "write tests" || first.UserID != 970 {
		t.Fatalf("unexpected created todo: %+v", first)
	}
	if _, err := client.Create(ctx, "someone else", 971, false); err != nil {
		t.Fatalf("create other user: %v", err)
	}
	second, err := client.Create(ctx, "ship", 970, true)
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	tasks, err := client.List(ctx, 970)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("unexpected list: %+v", tasks)
	}

	patched, err := client.Patch(ctx, first.ID, model.CompletedPatch(true))
	if err != nil {
		t.Fatalf("patch completed: %v", err)
	}
	if !patched.Completed || patched.Title != "write tests" {
		t.Fatalf("unexpected patched todo: %+v", patched)
	}
	patched, err = client.Patch(ctx, first.ID, model.TitlePatch("write more tests"))
	if err != nil {
		t.Fatalf("patch title: %v", err)
	}
	if patched.Title != "write more tests" || !patched.Completed {
		t.Fatalf("expected title patch to keep completed: %+v", patched)
	}

	if err := client.Remove(ctx, second.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	tasks, err = client.List(ctx, 970)
	if err != nil {
		t.Fatalf("list after remove: %v", err)
	}
	if len(tasks) != 1 || tasks[0].ID != first.ID {
		t.Fatalf("unexpected list after remove: %+v", tasks)
	}
}

func TestServerErrorsSurfaceAsStatusErrors(t *testing.T) {
	_, client := setupServer(t)
	ctx := context.Background()

	err := client.Remove(ctx, 404)
	var statusErr *gateway.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 status error, got %v", err)
	}
	if _, err := client.Create(ctx, "   ", 970, false); !errors.Is(err, gateway.ErrUnexpectedStatus) {
		t.Fatalf("expected blank title rejection, got %v", err)
	}
	if _, err := client.List(ctx, 0); !errors.Is(err, gateway.ErrUnexpectedStatus) {
		t.Fatalf("expected missing user rejection, got %v", err)
	}
}

func TestServerRejectsBadPatchBodies(t *testing.T) {
	srv, client := setupServer(t)
	created, err := client.Create(context.Background(), "todo", 1, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, body := range []string{`{}`, `{"title":"  "}`, `not json`} {
		req, err := http.NewRequest(http.MethodPatch, srv.URL+"/todos/"+strconv.Itoa(created.ID), strings.NewReader(body))
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("patch %q: %v", body, err)
		}
		_ = resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for %q, got %d", body, resp.StatusCode)
		}
	}

	resp, err := http.Get(srv.URL + "/todos/abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", resp.StatusCode)
	}
}
