package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

// MemoryRepo keeps documents in process memory. It backs tests and the
// single-instance development setup.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*document.Snapshot
	now   func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*document.Snapshot), now: time.Now}
}

func (m *MemoryRepo) Create(ctx context.Context, snap *document.Snapshot) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.ID == "" {
		snap.ID = "doc_" + uuid.NewString()
	}
	if _, exists := m.store[snap.ID]; exists {
		return "", ErrDuplicateID
	}
	snap.CreatedAt = m.now().UTC()
	snap.UpdatedAt = snap.CreatedAt
	m.store[snap.ID] = snap.Clone()
	return snap.ID, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*document.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.store[id]; ok {
		return d.Clone(), nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]*document.Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*document.Snapshot, 0, len(m.store))
	for _, d := range m.store {
		out = append(out, d.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *MemoryRepo) Save(ctx context.Context, id string, payload *document.SavePayload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.store[id]
	if !ok {
		return ErrNotFound
	}
	d.Sections = payload.Sections.Clone()
	ts := payload.TemplateSettings
	d.TemplateSettings = &ts
	d.UpdatedAt = m.now().UTC()
	return nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
