package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document/repository"
)

var (
	ErrNotFound = document.ErrNotFound
)

// Service defines the document operations used by the handler layer. It is
// also the persistence gateway of the editing sessions.
type Service interface {
	document.Gateway
	Create(ctx context.Context, kind document.Kind, name string) (*document.Snapshot, error)
	Get(ctx context.Context, id string) (*document.Snapshot, error)
	List(ctx context.Context) ([]*document.Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() Service {
	return New(repository.NewMemoryRepo())
}

// New returns a Service backed by repo.
func New(repo repository.Repository) Service {
	return &documentService{repo: repo}
}

type documentService struct {
	repo repository.Repository
}

// Create stores an empty document of kind with the schema's default template.
func (s *documentService) Create(ctx context.Context, kind document.Kind, name string) (*document.Snapshot, error) {
	schema, err := document.SchemaFor(kind)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Untitled " + strings.ReplaceAll(string(kind), "_", " ")
	}
	settings := schema.DefaultSettings()
	snap := &document.Snapshot{
		Kind:             kind,
		Name:             name,
		Sections:         document.New(schema).Content(),
		TemplateSettings: &settings,
	}
	if _, err := s.repo.Create(ctx, snap); err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return snap, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*document.Snapshot, error) {
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document %s: %w", id, err)
	}
	return d, nil
}

// Fetch implements document.Gateway.
func (s *documentService) Fetch(ctx context.Context, id string) (*document.Snapshot, error) {
	return s.Get(ctx, id)
}

func (s *documentService) List(ctx context.Context) ([]*document.Snapshot, error) {
	return s.repo.List(ctx)
}

// Save normalizes the payload against the stored document's schema before
// overwriting it, so stored records keep exactly the declared key set.
func (s *documentService) Save(ctx context.Context, id string, payload *document.SavePayload) error {
	if payload == nil {
		return fmt.Errorf("save document %s: empty payload", id)
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	schema, err := document.SchemaFor(current.Kind)
	if err != nil {
		return err
	}
	ts := payload.TemplateSettings
	doc, settings, err := document.Hydrate(schema, &document.Snapshot{
		Kind:             current.Kind,
		Sections:         payload.Sections,
		TemplateSettings: &ts,
	})
	if err != nil {
		return err
	}
	normalized := &document.SavePayload{Sections: doc.Content(), TemplateSettings: settings}
	if err := s.repo.Save(ctx, id, normalized); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("save document %s: %w", id, err)
	}
	return nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete document %s: %w", id, err)
	}
	return nil
}
