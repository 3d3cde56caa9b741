package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
	"github.com/herfa/gate/pkg/cryptox"
	"github.com/herfa/gate/pkg/idx"
	"github.com/herfa/gate/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// SeedService populates reference data and, on an empty directory, a set of
// development accounts. Production deployments provision users elsewhere and
// only get the reference rows.
type SeedService struct {
	Store  store.Store
	Issuer string

	// Password is the shared credential for seeded dev accounts.
	Password string

	// SeedUsers gates the dev fixtures; reference data is always seeded.
	SeedUsers bool
}

var genderRows = []domain.Gender{
	{Code: "male", LabelAr: "ذكر", LabelFr: "Homme"},
	{Code: "female", LabelAr: "أنثى", LabelFr: "Femme"},
}

// Seed is idempotent: reference rows are upserted and dev accounts are only
// created when the directory is empty.
func (s *SeedService) Seed(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	for _, g := range genderRows {
		if err := s.Store.Genders().UpsertGender(ctx, g); err != nil {
			return fmt.Errorf("failed to seed gender %q: %w", g.Code, err)
		}
	}

	if !s.SeedUsers {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("failed to check directory: %w", err)
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.Password)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	users := []domain.UserRecord{
		{
			ID:       idx.New().String(),
			Name:     "Admin Principal",
			Email:    "admin@digitalcard.ma",
			Role:     domain.RoleSuperAdmin,
			IsActive: true,
			Language: "fr",
		},
		{
			ID:       idx.New().String(),
			Name:     "Yassine Moderateur",
			Email:    "yassine.mod@digitalcard.ma",
			Role:     domain.RoleAdmin,
			IsActive: true,
			Language: "fr",
			Permissions: []domain.Permission{
				domain.PermModerateProfiles,
				domain.PermViewReports,
			},
		},
		{
			ID:         idx.New().String(),
			Name:       "Hassan Ziani",
			Email:      "hassan.ziani@example.com",
			Role:       domain.RoleArtisan,
			IsActive:   true,
			Language:   "ar",
			GenderCode: "male",
			Bio:        "صانع زرابي تقليدية",
		},
		{
			ID:         idx.New().String(),
			Name:       "Fatima Zahra",
			Email:      "fatima.zahra@example.com",
			Role:       domain.RoleClient,
			IsActive:   true,
			Language:   "ar",
			GenderCode: "female",
		},
		{
			ID:       idx.New().String(),
			Name:     "Compte Suspendu",
			Email:    "suspendu@example.com",
			Role:     domain.RoleClient,
			IsActive: false,
			Language: "fr",
		},
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for i := range users {
			users[i].PasswordHash = hash
			if err := tx.Users().CreateUser(ctx, users[i]); err != nil {
				return fmt.Errorf("failed to create seed user %q: %w", users[i].Email, err)
			}
		}

		// The super admin gets an enrolled TOTP secret so the full
		// two-step flow is exercisable out of the box.
		key, err := totp.Generate(totp.GenerateOpts{
			Issuer:      s.Issuer,
			AccountName: users[0].Email,
			Period:      30,
			Digits:      otp.DigitsSix,
			Algorithm:   otp.AlgorithmSHA1,
		})
		if err != nil {
			return fmt.Errorf("failed to generate TOTP key: %w", err)
		}
		if err := tx.Users().EnrollSecondFactor(ctx, users[0].ID, key.Secret()); err != nil {
			return fmt.Errorf("failed to enroll second factor: %w", err)
		}

		l.Info("seeded development accounts",
			slog.Int("count", len(users)),
			slog.String("super_admin", users[0].Email),
		)
		// Dev only: the enrollment URL is needed to add the account to an
		// authenticator app.
		l.Debug("super admin TOTP enrollment", slog.String("url", key.URL()))
		return nil
	})
	return err
}
