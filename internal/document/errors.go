package document

import "errors"

var (
	ErrUnknownKind          = errors.New("unknown document kind")
	ErrKindMismatch         = errors.New("snapshot kind does not match schema")
	ErrUnknownSection       = errors.New("unknown section")
	ErrUnknownField         = errors.New("unknown field")
	ErrNotRecordSection     = errors.New("section is not a record section")
	ErrNotCollectionSection = errors.New("section is not a collection section")
	ErrEntryNotFound        = errors.New("entry not found")
	ErrIndexOutOfRange      = errors.New("entry index out of range")
	ErrNotFound             = errors.New("document not found")
)
