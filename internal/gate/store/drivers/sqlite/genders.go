package sqlite

import (
	"context"

	"github.com/herfa/gate/internal/gate/domain"
)

type gendersRepo struct {
	db dbtx
}

func (r *gendersRepo) ListGenders(ctx context.Context) ([]domain.Gender, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT code, label_ar, label_fr FROM genders ORDER BY code`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Gender
	for rows.Next() {
		var g domain.Gender
		if err := rows.Scan(&g.Code, &g.LabelAr, &g.LabelFr); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *gendersRepo) UpsertGender(ctx context.Context, g domain.Gender) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO genders (code, label_ar, label_fr) VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET label_ar = excluded.label_ar, label_fr = excluded.label_fr`,
		g.Code, g.LabelAr, g.LabelFr)
	return err
}
