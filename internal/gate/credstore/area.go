// Package credstore persists exactly one session record under a well-known
// key, across two storage areas: a durable area that survives restarts and a
// session-scoped area that lives and dies with the process (or with the
// redis TTL when deployed multi-instance). Writing to one area does not
// clear the other; Save clears both before writing so replacement is atomic
// from the caller's point of view.
package credstore

import (
	"context"
	"errors"

	"github.com/herfa/gate/internal/gate/domain"
)

// ErrAbsent reports that an area holds no row for the requested key.
var ErrAbsent = errors.New("credstore: absent")

// Area is a single persistence area. Implementations: the durable sqlite
// table, an in-process map, and a redis keyspace.
type Area interface {
	Put(ctx context.Context, row domain.CredentialRow) error

	// Get returns the row for key, or ErrAbsent.
	Get(ctx context.Context, key string) (domain.CredentialRow, error)

	// Delete removes the row for key. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
