package repository

import (
	"context"
	"errors"

	"github.com/md-rejoyan-islam/resume-builder-sub002/internal/document"
)

var (
	ErrNotFound    = document.ErrNotFound
	ErrDuplicateID = errors.New("document id already exists")
)

// Repository stores document snapshots. Save overwrites the whole content and
// template settings of an existing document.
type Repository interface {
	Create(ctx context.Context, snap *document.Snapshot) (string, error)
	Get(ctx context.Context, id string) (*document.Snapshot, error)
	List(ctx context.Context) ([]*document.Snapshot, error)
	Save(ctx context.Context, id string, payload *document.SavePayload) error
	Delete(ctx context.Context, id string) error
}
