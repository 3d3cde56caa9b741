package service

import (
	"context"
	"fmt"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
)

// Overview is the admin reporting rollup.
type Overview struct {
	TotalUsers  int                 `json:"total_users"`
	ActiveUsers int                 `json:"active_users"`
	ByRole      map[domain.Role]int `json:"by_role"`
	GeneratedAt time.Time           `json:"generated_at"`
}

type StatsService struct {
	Store store.Store
}

func (s *StatsService) Overview(ctx context.Context) (Overview, error) {
	byRole, err := s.Store.Users().CountByRole(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to count users by role: %w", err)
	}

	active, err := s.Store.Users().CountActive(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("failed to count active users: %w", err)
	}

	total := 0
	for _, n := range byRole {
		total += n
	}

	return Overview{
		TotalUsers:  total,
		ActiveUsers: active,
		ByRole:      byRole,
		GeneratedAt: time.Now().UTC(),
	}, nil
}
