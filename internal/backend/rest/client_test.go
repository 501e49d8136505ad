package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/service"
	"taskboard/internal/task"
)

// fakeAPI is a minimal in-memory server speaking the task tracker contract.
type fakeAPI struct {
	mu      sync.Mutex
	tasks   map[int64]map[string]any
	nextID  int64
	orders  [][]int64
	lastReq *http.Request
	body    []byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{tasks: make(map[int64]map[string]any), nextID: 1}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.lastReq = r
	f.body, _ = io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/tasks":
		list := make([]map[string]any, 0, len(f.tasks))
		for id := int64(1); id < f.nextID; id++ {
			if t, ok := f.tasks[id]; ok {
				list = append(list, t)
			}
		}
		_ = json.NewEncoder(w).Encode(list)

	case r.Method == http.MethodPost && r.URL.Path == "/api/tasks":
		var t map[string]any
		_ = json.Unmarshal(f.body, &t)
		if strings.TrimSpace(t["title"].(string)) == "" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"title":"Title is required"}`))
			return
		}
		t["id"] = f.nextID
		t["createdAt"] = "2024-04-01T10:00:00.5"
		t["orderIndex"] = 0
		f.tasks[f.nextID] = t
		f.nextID++
		_ = json.NewEncoder(w).Encode(t)

	case r.Method == http.MethodPut && r.URL.Path == "/api/tasks/reorder":
		var ids []int64
		_ = json.Unmarshal(f.body, &ids)
		f.orders = append(f.orders, ids)
		for i, id := range ids {
			if t, ok := f.tasks[id]; ok {
				t["orderIndex"] = i
			}
		}
		w.WriteHeader(http.StatusOK)

	case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/api/tasks/"):
		id := parseID(r.URL.Path)
		t, ok := f.tasks[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var in map[string]any
		_ = json.Unmarshal(f.body, &in)
		for _, k := range []string{"title", "description", "status", "dueDate"} {
			t[k] = in[k]
		}
		_ = json.NewEncoder(w).Encode(t)

	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/tasks/"):
		delete(f.tasks, parseID(r.URL.Path))
		w.WriteHeader(http.StatusNoContent)

	case r.Method == http.MethodGet && r.URL.Path == "/auth/user":
		_, _ = w.Write([]byte(`{"username":"alice"}`))

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func parseID(path string) int64 {
	var id int64
	for _, c := range strings.TrimPrefix(path, "/api/tasks/") {
		id = id*10 + int64(c-'0')
	}
	return id
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewWithHTTPClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return c
}

func TestClient_CreateListRoundTrip(t *testing.T) {
	api := newFakeAPI()
	c := newTestClient(t, api)
	ctx := context.Background()

	due, _ := task.ParseDate("2024-05-01")
	created, err := c.CreateTask(ctx, task.Input{Title: "Report Q1", DueDate: &due})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != 1 {
		t.Errorf("expected id 1, got %d", created.ID)
	}
	if ct := api.lastReq.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected json content type, got %q", ct)
	}

	tasks, err := c.ListTasks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task, got %d", len(tasks))
	}
	if tasks[0].DueDate == nil || tasks[0].DueDate.String() != "2024-05-01" {
		t.Errorf("expected due date to round-trip, got %v", tasks[0].DueDate)
	}
	if tasks[0].Status != task.Pending {
		t.Errorf("expected PENDING, got %v", tasks[0].Status)
	}
}

func TestClient_CreateRejected(t *testing.T) {
	c := newTestClient(t, newFakeAPI())

	_, err := c.CreateTask(context.Background(), task.Input{Title: " "})
	var rej *service.RejectedError
	if !errors.As(err, &rej) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rej.StatusCode != http.StatusBadRequest || rej.Message != "Title is required" {
		t.Errorf("unexpected rejection: %+v", rej)
	}
}

func TestClient_UpdateNotFound(t *testing.T) {
	c := newTestClient(t, newFakeAPI())

	_, err := c.UpdateTask(context.Background(), 42, task.Input{Title: "x"})
	if !errors.Is(err, service.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_ReorderSendsArray(t *testing.T) {
	api := newFakeAPI()
	c := newTestClient(t, api)
	ctx := context.Background()

	for _, title := range []string{"a", "b", "c"} {
		if _, err := c.CreateTask(ctx, task.Input{Title: title}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	for range 2 {
		if err := c.Reorder(ctx, []int64{3, 1, 2}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if string(api.body) != "[3,1,2]" {
		t.Errorf("expected body [3,1,2], got %s", api.body)
	}

	tasks, _ := c.ListTasks(ctx)
	task.Sort(tasks)
	if got := task.IDs(tasks); !slices.Equal(got, []int64{3, 1, 2}) {
		t.Errorf("expected server order [3 1 2], got %v", got)
	}
}

func TestClient_DeleteAndUser(t *testing.T) {
	api := newFakeAPI()
	c := newTestClient(t, api)
	ctx := context.Background()

	if _, err := c.CreateTask(ctx, task.Input{Title: "a"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.DeleteTask(ctx, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.lastReq.URL.Path != "/api/tasks/1" {
		t.Errorf("unexpected path %q", api.lastReq.URL.Path)
	}

	u, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "alice" {
		t.Errorf("expected alice, got %q", u.Username)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if _, err := c.ListTasks(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_LoginRedirectIsUnauthorized(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login.html", http.StatusFound)
	}))

	if _, err := c.ListTasks(context.Background()); !errors.Is(err, service.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClient_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewWithHTTPClient(url, &http.Client{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); !errors.Is(err, service.ErrTransport) {
		t.Errorf("expected ErrTransport, got %v", err)
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer close(release)
	c.timeout = 20 * time.Millisecond

	_, err := c.ListTasks(context.Background())
	if !errors.Is(err, service.ErrTimeout) {
		t.Errorf("expected ErrTimeout, got %v", err)
	}
}

func TestNew_SessionCookieAndToken(t *testing.T) {
	var gotCookie, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("JSESSIONID"); err == nil {
			gotCookie = ck.Value
		}
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cfg := &config.Config{BaseURL: srv.URL, SessionCookie: "s3ss10n", Token: "t0k3n"}
	c, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.ListTasks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCookie != "s3ss10n" {
		t.Errorf("expected session cookie, got %q", gotCookie)
	}
	if gotAuth != "Bearer t0k3n" {
		t.Errorf("expected bearer token, got %q", gotAuth)
	}
}

func TestNew_InvalidBaseURL(t *testing.T) {
	if _, err := New(context.Background(), &config.Config{BaseURL: "localhost"}); err == nil {
		t.Error("expected error for base url without scheme")
	}
}
