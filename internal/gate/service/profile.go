package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/herfa/gate/internal/gate/credstore"
	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/pkg/slogx"
)

// ProfileUpdate is the replacement set of display fields. The whole set is
// applied at once; omitted fields become empty.
type ProfileUpdate struct {
	Name       string
	AvatarURL  string
	Bio        string
	Language   string
	GenderCode string
}

var ErrInvalidLanguage = errors.New("language must be \"ar\" or \"fr\"")

// ProfileService edits the directory profile and keeps the stored session
// snapshot in step with it.
type ProfileService struct {
	Store       store.Store
	Credentials *credstore.Store
}

// ReplaceProfile overwrites the user's display fields and, when the stored
// session belongs to the same user, rewrites the embedded snapshot in place
// so the session and the directory never disagree.
func (s *ProfileService) ReplaceProfile(ctx context.Context, userID string, update ProfileUpdate) (domain.UserRecord, error) {
	if update.Language != "" && update.Language != "ar" && update.Language != "fr" {
		return domain.UserRecord{}, ErrInvalidLanguage
	}

	var updated domain.UserRecord
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return fmt.Errorf("failed to look up user: %w", err)
		}

		user.Name = update.Name
		user.AvatarURL = update.AvatarURL
		user.Bio = update.Bio
		user.Language = update.Language
		user.GenderCode = update.GenderCode

		if err := tx.Users().ReplaceProfile(ctx, user); err != nil {
			return fmt.Errorf("failed to replace profile: %w", err)
		}

		updated, err = tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("failed to reload user: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.UserRecord{}, err
	}

	if err := s.refreshSessionSnapshot(ctx, updated); err != nil {
		return domain.UserRecord{}, err
	}

	slogx.FromContext(ctx).Info("profile replaced", slog.String("user_id", userID))
	return updated, nil
}

// refreshSessionSnapshot rewrites the stored record with the new snapshot,
// preserving the tokens, expiry, pending flag and holding area.
func (s *ProfileService) refreshSessionSnapshot(ctx context.Context, user domain.UserRecord) error {
	rec, ok, err := s.Credentials.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !ok || rec.User.ID != user.ID {
		return nil
	}

	persistent, ok, err := s.Credentials.Holder(ctx)
	if err != nil {
		return fmt.Errorf("failed to locate session: %w", err)
	}
	if !ok {
		return nil
	}

	rec.User = user.Snapshot()
	if err := s.Credentials.Save(ctx, rec, persistent); err != nil {
		return fmt.Errorf("failed to rewrite session snapshot: %w", err)
	}
	return nil
}
