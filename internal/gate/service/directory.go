package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
)

// DirectoryService serves read-only lookups against the user directory and
// the registration reference data.
type DirectoryService struct {
	Store store.Store
}

func (s *DirectoryService) GetUser(ctx context.Context, userID string) (domain.UserRecord, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.UserRecord{}, ErrUserNotFound
		}
		return domain.UserRecord{}, fmt.Errorf("failed to look up user: %w", err)
	}
	return user, nil
}

func (s *DirectoryService) ListGenders(ctx context.Context) ([]domain.Gender, error) {
	genders, err := s.Store.Genders().ListGenders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genders: %w", err)
	}
	return genders, nil
}
