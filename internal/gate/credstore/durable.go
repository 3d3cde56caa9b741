package credstore

import (
	"context"
	"errors"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
)

// durableArea adapts the store's credentials repository into an Area, so
// persisted sessions survive restarts alongside the user directory.
type durableArea struct {
	creds store.Credentials
}

// NewDurableArea wraps a credentials repository as the durable area.
func NewDurableArea(creds store.Credentials) Area {
	return &durableArea{creds: creds}
}

func (a *durableArea) Put(ctx context.Context, row domain.CredentialRow) error {
	return a.creds.PutCredential(ctx, row)
}

func (a *durableArea) Get(ctx context.Context, key string) (domain.CredentialRow, error) {
	row, err := a.creds.GetCredential(ctx, key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.CredentialRow{}, ErrAbsent
		}
		return domain.CredentialRow{}, err
	}
	return row, nil
}

func (a *durableArea) Delete(ctx context.Context, key string) error {
	return a.creds.DeleteCredential(ctx, key)
}
