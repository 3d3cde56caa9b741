package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
	"github.com/herfa/gate/internal/gate/store"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, name, email, role, is_active, permissions, avatar_url, bio,
	language, gender_code, password_hash, second_factor_secret, second_factor_enabled,
	created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.UserRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, strings.ToLower(strings.TrimSpace(email)))
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.UserRecord) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, role, is_active, permissions, avatar_url, bio,
			language, gender_code, password_hash, second_factor_secret, second_factor_enabled,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID,
		u.Name,
		strings.ToLower(strings.TrimSpace(u.Email)),
		u.Role.String(),
		u.IsActive,
		joinPermissions(u.Permissions),
		u.AvatarURL,
		u.Bio,
		u.Language,
		u.GenderCode,
		u.PasswordHash,
		optionalString(u.SecondFactorSecret),
		optionalTime(u.SecondFactorEnabled),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) ReplaceProfile(ctx context.Context, u domain.UserRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = ?, permissions = ?, avatar_url = ?, bio = ?, language = ?,
			gender_code = ?, updated_at = ?
		WHERE id = ?`,
		u.Name,
		joinPermissions(u.Permissions),
		u.AvatarURL,
		u.Bio,
		u.Language,
		u.GenderCode,
		time.Now().UTC(),
		u.ID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`,
		active, time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) EnrollSecondFactor(ctx context.Context, userID string, secret string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET second_factor_secret = ?, second_factor_enabled = ?, updated_at = ? WHERE id = ?`,
		secret, time.Now().UTC(), time.Now().UTC(), userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *usersRepo) CountByRole(ctx context.Context) (map[domain.Role]int, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role, COUNT(*) FROM users GROUP BY role`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[domain.Role]int)
	for rows.Next() {
		var roleStr string
		var n int
		if err := rows.Scan(&roleStr, &n); err != nil {
			return nil, err
		}
		role, err := domain.ParseRole(roleStr)
		if err != nil {
			// Unknown roles in storage are a data problem; skip rather
			// than fail the whole overview.
			continue
		}
		counts[role] = n
	}
	return counts, rows.Err()
}

func (r *usersRepo) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_active = 1`).Scan(&n)
	return n, err
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func scanUser(row *sql.Row) (domain.UserRecord, error) {
	var (
		u            domain.UserRecord
		roleStr      string
		permsStr     string
		secret       sql.NullString
		enabled      sql.NullTime
		avatar, bio  sql.NullString
		lang, gender sql.NullString
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &roleStr, &u.IsActive, &permsStr,
		&avatar, &bio, &lang, &gender, &u.PasswordHash,
		&secret, &enabled, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.UserRecord{}, mapNotFound(err)
	}

	role, err := domain.ParseRole(roleStr)
	if err != nil {
		return domain.UserRecord{}, err
	}
	u.Role = role
	u.Permissions = splitPermissions(permsStr)
	u.AvatarURL = avatar.String
	u.Bio = bio.String
	u.Language = lang.String
	u.GenderCode = gender.String
	if secret.Valid {
		v := secret.String
		u.SecondFactorSecret = &v
	}
	if enabled.Valid {
		v := enabled.Time
		u.SecondFactorEnabled = &v
	}
	return u, nil
}

func joinPermissions(perms []domain.Permission) string {
	if len(perms) == 0 {
		return ""
	}
	parts := make([]string, len(perms))
	for i, p := range perms {
		parts[i] = p.String()
	}
	return strings.Join(parts, " ")
}

func splitPermissions(s string) []domain.Permission {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	perms := make([]domain.Permission, 0, len(fields))
	for _, f := range fields {
		p, err := domain.ParsePermission(f)
		if err != nil {
			continue // tolerate retired permission names in old rows
		}
		perms = append(perms, p)
	}
	return perms
}

func optionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func optionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapConstraint(err error) error {
	if err == nil {
		return nil
	}
	// modernc/sqlite surfaces constraint failures in the error text.
	if strings.Contains(err.Error(), "UNIQUE constraint") {
		return store.ErrAlreadyExists
	}
	return err
}
