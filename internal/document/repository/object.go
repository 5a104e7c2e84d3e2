package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/storage"
)

// ObjectStore is the subset of an object storage client ObjectRepo needs.
// Get must return storage.ErrObjectNotFound for a missing key.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

const objectPrefix = "documents/"

// ObjectRepo keeps every document as one JSON object "documents/<id>.json".
// Read-modify-write cycles are serialized within the process only.
type ObjectRepo struct {
	mu    sync.Mutex
	store ObjectStore
}

func NewObjectRepo(store ObjectStore) *ObjectRepo {
	return &ObjectRepo{store: store}
}

func objectKey(id string) string {
	return objectPrefix + id + ".json"
}

func (o *ObjectRepo) Create(ctx context.Context, snap *document.Snapshot) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if snap.ID == "" {
		snap.ID = "doc_" + uuid.NewString()
	}
	if _, err := o.load(ctx, snap.ID); err == nil {
		return "", ErrDuplicateID
	} else if !errors.Is(err, ErrNotFound) {
		return "", err
	}
	snap.CreatedAt = time.Now().UTC()
	snap.UpdatedAt = snap.CreatedAt
	if err := o.put(ctx, snap); err != nil {
		return "", err
	}
	return snap.ID, nil
}

func (o *ObjectRepo) Get(ctx context.Context, id string) (*document.Snapshot, error) {
	return o.load(ctx, id)
}

func (o *ObjectRepo) List(ctx context.Context) ([]*document.Snapshot, error) {
	keys, err := o.store.List(ctx, objectPrefix)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	out := make([]*document.Snapshot, 0, len(keys))
	for _, k := range keys {
		if !strings.HasSuffix(k, ".json") {
			continue
		}
		id := strings.TrimSuffix(strings.TrimPrefix(k, objectPrefix), ".json")
		s, err := o.load(ctx, id)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (o *ObjectRepo) Save(ctx context.Context, id string, payload *document.SavePayload) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	s, err := o.load(ctx, id)
	if err != nil {
		return err
	}
	s.Sections = payload.Sections.Clone()
	ts := payload.TemplateSettings
	s.TemplateSettings = &ts
	s.UpdatedAt = time.Now().UTC()
	return o.put(ctx, s)
}

func (o *ObjectRepo) Delete(ctx context.Context, id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.load(ctx, id); err != nil {
		return err
	}
	return o.store.Delete(ctx, objectKey(id))
}

func (o *ObjectRepo) load(ctx context.Context, id string) (*document.Snapshot, error) {
	b, err := o.store.Get(ctx, objectKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get object %s: %w", id, err)
	}
	var s document.Snapshot
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("decode object %s: %w", id, err)
	}
	return &s, nil
}

func (o *ObjectRepo) put(ctx context.Context, s *document.Snapshot) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return o.store.Put(ctx, objectKey(s.ID), b, "application/json")
}
