package storage

import (
	"context"
	"io"
)

// DocumentStore keeps files attached to registrations and cause requests.
type DocumentStore interface {
	// Save stores content under a fresh reference derived from name. ok is
	// false, with no error, when the extension is not allowed or the
	// content exceeds the size ceiling; nothing is stored then.
	Save(ctx context.Context, name string, content io.Reader) (ref string, ok bool, err error)

	// Open returns a stored document. Unknown references yield
	// domain.ErrNotFound.
	Open(ctx context.Context, ref string) (io.ReadCloser, error)

	// Delete removes a stored document. Deleting an unknown reference is
	// not an error.
	Delete(ctx context.Context, ref string) error
}
