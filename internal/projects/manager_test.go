package projects

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"go.uber.org/zap"

	"projectboard/internal/api"
	"projectboard/internal/model"
	"projectboard/internal/session"
)

type recorderNotifier struct {
	mu        sync.Mutex
	successes []string
	errors    []string
	infos     []string
}

func (r *recorderNotifier) Success(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes = append(r.successes, msg)
}

func (r *recorderNotifier) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, msg)
}

func (r *recorderNotifier) Info(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.infos = append(r.infos, msg)
}

func (r *recorderNotifier) lastError() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.errors) == 0 {
		return ""
	}
	return r.errors[len(r.errors)-1]
}

func newManagerFixture(t *testing.T, handler http.Handler) (*Manager, *recorderNotifier) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := session.NewFileStore(filepath.Join(t.TempDir(), "session.json"), zap.NewNop())
	client := api.NewClient(srv.URL, store, zap.NewNop())
	notifier := &recorderNotifier{}
	return NewManager(client, notifier, zap.NewNop()), notifier
}

func TestManager_FetchReplacesList(t *testing.T) {
	ctx := context.Background()

	hits := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"data":[{"id":1,"name":"P1","description":"","tasks":[]}]}`))
	})
	m, _ := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	list := m.Projects()
	if len(list) != 1 || list[0].ID != 1 || list[0].Name != "P1" {
		t.Fatalf("list = %+v", list)
	}
	if m.Loading() {
		t.Fatal("loading flag must be false after completion")
	}

	// Fetch runs once per manager; the second call is a no-op.
	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if hits != 1 {
		t.Fatalf("backend hit %d times, want 1", hits)
	}
	if len(m.Projects()) != 1 {
		t.Fatal("second fetch must not duplicate entries")
	}
}

func TestManager_FetchClearsLoadingOnFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	m, _ := newManagerFixture(t, handler)

	if err := m.Fetch(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if m.Loading() {
		t.Fatal("loading flag must be cleared on the failure path too")
	}
}

func TestManager_SaveDraftAppends(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"data":[{"id":1,"name":"P1","description":"","tasks":[]}]}`))
		case r.Method == http.MethodPost && r.URL.Path == "/projects":
			// Backend assigns the identity.
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"id":2,"name":"New","description":"d","tasks":[{"id":10,"title":"t1","status":"pending"}]}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	m, notifier := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}

	m.Add()
	if !m.EditorOpen() {
		t.Fatal("Add should open the editor")
	}
	draft := m.Selected()
	if draft == nil || !draft.IsDraft() || len(draft.Tasks) != 0 {
		t.Fatalf("draft = %+v", draft)
	}
	draft.Name = "New"
	draft.Description = "d"
	draft.Tasks = []model.Task{{Title: "t1", Status: model.TaskPending}}

	if err := m.Save(ctx, *draft); err != nil {
		t.Fatalf("Save: %v", err)
	}

	list := m.Projects()
	if len(list) != 2 {
		t.Fatalf("list grew to %d entries, want 2", len(list))
	}
	if list[1].ID != 2 {
		t.Fatalf("appended id = %d, want the server-assigned 2", list[1].ID)
	}
	if m.EditorOpen() {
		t.Fatal("editor should close after a successful save")
	}
	if len(notifier.successes) == 0 || notifier.successes[len(notifier.successes)-1] != "Project saved successfully" {
		t.Fatalf("successes = %v", notifier.successes)
	}
}

func TestManager_SavePersistedReplacesById(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"data":[{"id":1,"name":"P1","description":"","tasks":[]},{"id":2,"name":"P2","description":"","tasks":[]}]}`))
		case r.Method == http.MethodPut && r.URL.Path == "/projects/1":
			w.Write([]byte(`{"data":{"id":1,"name":"Renamed","description":"","tasks":[]}}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	m, _ := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}

	p := m.Projects()[0]
	p.Name = "Renamed"
	if err := m.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	list := m.Projects()
	if len(list) != 2 {
		t.Fatalf("list length changed to %d", len(list))
	}
	count := 0
	for _, got := range list {
		if got.ID == 1 {
			count++
			if got.Name != "Renamed" {
				t.Fatalf("entry 1 = %+v, want the server payload", got)
			}
		}
	}
	if count != 1 {
		t.Fatalf("%d entries with id 1, want exactly one", count)
	}
}

func TestManager_SaveFailureKeepsEditorOpen(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":{"name":["Name is required"]}}`))
	})
	m, notifier := newManagerFixture(t, handler)

	m.Add()
	draft := m.Selected()

	if err := m.Save(ctx, *draft); err == nil {
		t.Fatal("expected save failure")
	}
	if !m.EditorOpen() {
		t.Fatal("editor must stay open for a retry")
	}
	if notifier.lastError() != "Name is required" {
		t.Fatalf("error notification = %q, want the flattened validation message", notifier.lastError())
	}
}

func TestManager_DeleteRemovesOnConfirmation(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			w.Write([]byte(`{"data":[{"id":7,"name":"P7","description":"","tasks":[]}]}`))
		case r.Method == http.MethodDelete && r.URL.Path == "/projects/7":
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	})
	m, notifier := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, 7); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, p := range m.Projects() {
		if p.ID == 7 {
			t.Fatal("project 7 still present after confirmed delete")
		}
	}
	if len(notifier.successes) == 0 {
		t.Fatal("expected a success notification")
	}
}

func TestManager_DeleteFailureLeavesListUntouched(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Write([]byte(`{"data":[{"id":7,"name":"P7","description":"","tasks":[]}]}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"error":"cannot delete"}`))
		}
	})
	m, notifier := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.Delete(ctx, 7); err == nil {
		t.Fatal("expected delete failure")
	}

	// No optimistic removal: the entry survives until the backend confirms.
	list := m.Projects()
	if len(list) != 1 || list[0].ID != 7 {
		t.Fatalf("list = %+v, want project 7 untouched", list)
	}
	if notifier.lastError() != "cannot delete" {
		t.Fatalf("error notification = %q", notifier.lastError())
	}
}

func TestManager_EditCopiesTasks(t *testing.T) {
	ctx := context.Background()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"P1","description":"","tasks":[{"id":10,"title":"t1","status":"pending"}]}]}`))
	})
	m, _ := newManagerFixture(t, handler)

	if err := m.Fetch(ctx); err != nil {
		t.Fatal(err)
	}

	m.Edit(m.Projects()[0])
	edited := m.Selected()
	edited.Tasks[0].Title = "changed"
	edited.Tasks = append(edited.Tasks, model.Task{Title: "t2", Status: model.TaskPending})

	// In-editor changes must not leak into the collection before save.
	original := m.Projects()[0]
	if len(original.Tasks) != 1 || original.Tasks[0].Title != "t1" {
		t.Fatalf("collection mutated by editor changes: %+v", original.Tasks)
	}
}

func TestManager_DuplicateInFlightSaveRejected(t *testing.T) {
	ctx := context.Background()

	release := make(chan struct{})
	started := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			close(started)
			<-release
			w.Write([]byte(`{"data":{"id":1,"name":"P1","description":"","tasks":[]}}`))
		}
	})
	m, notifier := newManagerFixture(t, handler)

	p := model.Project{ID: 1, Name: "P1", Tasks: []model.Task{}}

	done := make(chan error, 1)
	go func() {
		done <- m.Save(ctx, p)
	}()
	<-started

	// Second submission for the same project while one is in flight.
	if err := m.Save(ctx, p); err == nil {
		t.Fatal("duplicate in-flight save should be rejected")
	}
	if notifier.lastError() != "Save already in progress" {
		t.Fatalf("error notification = %q", notifier.lastError())
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	// The guard releases once the request finishes.
	if !m.acquire("save:1") {
		t.Fatal("guard not released after completion")
	}
	m.release("save:1")
}

func TestManager_ConcurrentDraftSavesIndependent(t *testing.T) {
	ctx := context.Background()

	started := make(chan struct{}, 2)
	release := make(chan struct{})
	var mu sync.Mutex
	nextID := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			return
		}
		mu.Lock()
		nextID++
		id := nextID
		mu.Unlock()

		started <- struct{}{}
		<-release
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"data":{"id":%d,"name":"D%d","description":"","tasks":[]}}`, id, id)
	})
	m, notifier := newManagerFixture(t, handler)

	done := make(chan error, 2)
	go func() { done <- m.Save(ctx, model.Project{Name: "D1", Tasks: []model.Task{}}) }()
	go func() { done <- m.Save(ctx, model.Project{Name: "D2", Tasks: []model.Task{}}) }()

	// Both drafts must pass the guard and reach the backend together;
	// they share id zero but are distinct submissions.
	<-started
	<-started
	close(release)

	for i := 0; i < 2; i++ {
		if err := <-done; err != nil {
			t.Fatalf("draft save rejected: %v", err)
		}
	}
	if got := notifier.lastError(); got != "" {
		t.Fatalf("error notification = %q, want none", got)
	}
	if len(m.Projects()) != 2 {
		t.Fatalf("list = %+v, want both drafts reconciled", m.Projects())
	}
}
