package document

import "context"

// Gateway is the persistence boundary of the editing engine. Fetch must
// return ErrNotFound (possibly wrapped) for an unknown id.
type Gateway interface {
	Fetch(ctx context.Context, id string) (*Snapshot, error)
	Save(ctx context.Context, id string, payload *SavePayload) error
}
