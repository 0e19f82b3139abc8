package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandeepkv93/todosync/internal/model"
)

type recordedRequest struct {
	Method    string
	Path      string
	Query     string
	Body      map[string]any
	RequestID string
}

func newTestServer(t *testing.T, status int, response string) (*Client, *[]recordedRequest) {
	t.Helper()
	var seen []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			RequestID: r.Header.Get(RequestIDHeader),
		}
		raw, _ := io.ReadAll(r.Body)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &rec.Body); err != nil {
				t.Errorf("decode request body: %v", err)
			}
		}
		seen = append(seen, rec)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL + "/"), &seen
}

func TestClientList(t *testing.T) {
	client, seen := newTestServer(t, http.StatusOK, `[{"id":1,"userId":970,"title":"a","completed":true}]`)
	tasks, err := client.List(context.Background(), 970)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 1 || tasks[0] != (model.Task{ID: 1, UserID: 970, Title: "a", Completed: true}) {
		t.Fatalf("unexpected tasks: %+v", tasks)
	}
	req := (*seen)[0]
	if req.Method != http.MethodGet || req.Path != "/todos" || req.Query != "userId=970" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.RequestID == "" {
		t.Fatal("expected request id header")
	}
}

func TestClientListNullBody(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `null`)
	tasks, err := client.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestClientCreate(t *testing.T) {
	client, seen := newTestServer(t, http.StatusCreated, `{"id":12,"userId":970,"title":"new","completed":false}`)
	task, err := client.Create(context.Background(), "new", 970, false)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.ID != 12 || task.Title != "new" {
		t.Fatalf("unexpected created task: %+v", task)
	}
	req := (*seen)[0]
	if req.Method != http.MethodPost || req.Path != "/todos" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.Body["title"] != "new" || req.Body["userId"] != float64(970) || req.Body["completed"] != false {
		t.Fatalf("unexpected create body: %#v", req.Body)
	}
}

func TestClientPatchSendsOnlySetFields(t *testing.T) {
	client, seen := newTestServer(t, http.StatusOK, `{"id":3,"userId":970,"title":"x","completed":true}`)
	task, err := client.Patch(context.Background(), 3, model.CompletedPatch(true))
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if !task.Completed {
		t.Fatalf("unexpected patched task: %+v", task)
	}
	req := (*seen)[0]
	if req.Method != http.MethodPatch || req.Path != "/todos/3" {
		t.Fatalf("unexpected request: %+v", req)
	}
	if len(req.Body) != 1 || req.Body["completed"] != true {
		t.Fatalf("expected only completed in body, got %#v", req.Body)
	}
}

func TestClientPatchRejectsEmptyPatch(t *testing.T) {
	client, seen := newTestServer(t, http.StatusOK, `{}`)
	if _, err := client.Patch(context.Background(), 3, model.TaskPatch{}); !errors.Is(err, ErrEmptyPatch) {
		t.Fatalf("expected ErrEmptyPatch, got %v", err)
	}
	if len(*seen) != 0 {
		t.Fatalf("expected no request, got %d", len(*seen))
	}
}

func TestClientRemove(t *testing.T) {
	client, seen := newTestServer(t, http.StatusOK, `1`)
	if err := client.Remove(context.Background(), 8); err != nil {
		t.Fatalf("remove: %v", err)
	}
	req := (*seen)[0]
	if req.Method != http.MethodDelete || req.Path != "/todos/8" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestClientNon2xxIsStatusError(t *testing.T) {
	client, _ := newTestServer(t, http.StatusNotFound, `not found`)
	err := client.Remove(context.Background(), 8)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("expected ErrUnexpectedStatus, got %v", err)
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != http.StatusNotFound || statusErr.Body != "not found" {
		t.Fatalf("unexpected status error: %#v", err)
	}
}

func TestClientTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	client := NewClient(base)
	if _, err := client.List(context.Background(), 1); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestNewClientDefaultsBaseURL(t *testing.T) {
	if got := NewClient("  ").BaseURL(); got != DefaultBaseURL {
		t.Fatalf("expected default base url, got %q", got)
	}
}
