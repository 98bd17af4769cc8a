package projects

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"projectboard/internal/api"
	"projectboard/internal/model"
	"projectboard/internal/notify"
	"projectboard/pkg/metrics"
)

// Manager owns the in-memory project collection and the editor state, and
// orchestrates CRUD against the backend. The list is only ever mutated by
// reconciling confirmed backend responses; deletes are not applied
// locally until the backend confirms.
type Manager struct {
	client   *api.Client
	notifier notify.Notifier
	logger   *zap.Logger

	mu         sync.Mutex
	projects   []model.Project
	loading    bool
	fetched    bool
	editorOpen bool
	selected   *model.Project
	inflight   map[string]struct{}
}

type listResponse struct {
	Data []model.Project `json:"data"`
}

type projectResponse struct {
	Data model.Project `json:"data"`
}

func NewManager(client *api.Client, notifier notify.Notifier, logger *zap.Logger) *Manager {
	return &Manager{
		client:   client,
		notifier: notifier,
		logger:   logger,
		inflight: make(map[string]struct{}),
	}
}

// Fetch loads the collection from the backend, replacing it wholesale.
// It runs once per manager; later calls are no-ops. The loading flag is
// cleared on every path.
func (m *Manager) Fetch(ctx context.Context) error {
	m.mu.Lock()
	if m.fetched {
		m.mu.Unlock()
		return nil
	}
	m.fetched = true
	m.loading = true
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.loading = false
		m.mu.Unlock()
	}()

	var resp listResponse
	if err := m.client.Get(ctx, "/projects", &resp); err != nil {
		m.logger.Error("Error fetching projects", zap.Error(err))
		metrics.IncrementProjectSync("fetch", "error")
		return err
	}

	m.mu.Lock()
	m.projects = resp.Data
	m.mu.Unlock()

	metrics.IncrementProjectSync("fetch", "success")
	return nil
}

// Add opens the editor with a fresh draft.
func (m *Manager) Add() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.selected = &model.Project{Tasks: []model.Task{}}
	m.editorOpen = true
}

// Edit opens the editor with a copy of the given project, so in-editor
// changes do not touch the collection until saved.
func (m *Manager) Edit(p model.Project) {
	clone := p.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.selected = &clone
	m.editorOpen = true
}

// Save persists the project: create for drafts, update otherwise. The
// backend's returned payload is canonical and is reconciled into the
// collection. On failure the editor stays open for a retry.
func (m *Manager) Save(ctx context.Context, p model.Project) error {
	// Drafts all carry id zero and would collide on one key, so the
	// guard covers persisted projects only. Two new projects may save
	// concurrently; each resolves to its own server-assigned id.
	if !p.IsDraft() {
		key := "save:" + strconv.Itoa(p.ID)
		if !m.acquire(key) {
			m.notifier.Error("Save already in progress")
			return fmt.Errorf("save already in progress for project %d", p.ID)
		}
		defer m.release(key)
	}

	var (
		resp      projectResponse
		err       error
		operation string
	)
	if p.IsDraft() {
		operation = "create"
		err = m.client.Post(ctx, "/projects", p, &resp)
	} else {
		operation = "update"
		err = m.client.Put(ctx, "/projects/"+strconv.Itoa(p.ID), p, &resp)
	}

	if err != nil {
		m.notifier.Error(err.Error())
		metrics.IncrementProjectSync(operation, "error")
		return err
	}

	m.reconcile(resp.Data)

	m.mu.Lock()
	m.editorOpen = false
	m.selected = nil
	m.mu.Unlock()

	metrics.IncrementProjectSync(operation, "success")
	m.notifier.Success("Project saved successfully")
	return nil
}

// Delete removes the project on the backend first; the local entry goes
// away only after confirmation.
func (m *Manager) Delete(ctx context.Context, id int) error {
	key := "delete:" + strconv.Itoa(id)
	if !m.acquire(key) {
		m.notifier.Error("Delete already in progress")
		return fmt.Errorf("delete already in progress for project %d", id)
	}
	defer m.release(key)

	if err := m.client.Delete(ctx, "/projects/"+strconv.Itoa(id)); err != nil {
		m.notifier.Error(err.Error())
		metrics.IncrementProjectSync("delete", "error")
		return err
	}

	m.mu.Lock()
	kept := m.projects[:0]
	for _, p := range m.projects {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	m.projects = kept
	m.mu.Unlock()

	metrics.IncrementProjectSync("delete", "success")
	m.notifier.Success("Project deleted successfully")
	return nil
}

// reconcile replaces the entry matching the project's id, or appends when
// the id is new. The collection stays unique by id.
func (m *Manager) reconcile(p model.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.projects {
		if m.projects[i].ID == p.ID {
			m.projects[i] = p
			return
		}
	}
	m.projects = append(m.projects, p)
}

// acquire guards duplicate in-flight submissions per operation and id.
// The original client issued overlapping requests freely; rejecting the
// duplicate is the deliberate deviation noted in DESIGN.md.
func (m *Manager) acquire(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.inflight[key]; busy {
		return false
	}
	m.inflight[key] = struct{}{}
	return true
}

func (m *Manager) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.inflight, key)
}

// Projects returns a snapshot of the collection.
func (m *Manager) Projects() []model.Project {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Project, len(m.projects))
	copy(out, m.projects)
	return out
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

func (m *Manager) EditorOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.editorOpen
}

// Selected returns the project currently in the editor, or nil.
func (m *Manager) Selected() *model.Project {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.selected == nil {
		return nil
	}
	clone := m.selected.Clone()
	return &clone
}

// CloseEditor discards the editor state without saving.
func (m *Manager) CloseEditor() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.editorOpen = false
	m.selected = nil
}
