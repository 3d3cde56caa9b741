package sqlite

import (
	"context"
	"time"

	"github.com/herfa/gate/internal/gate/domain"
)

type credentialsRepo struct {
	db dbtx
}

func (r *credentialsRepo) PutCredential(ctx context.Context, row domain.CredentialRow) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (key, encoded, refresh_fingerprint, pending_second_factor, expires_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			encoded = excluded.encoded,
			refresh_fingerprint = excluded.refresh_fingerprint,
			pending_second_factor = excluded.pending_second_factor,
			expires_at = excluded.expires_at,
			updated_at = excluded.updated_at`,
		row.Key,
		row.Encoded,
		row.RefreshFingerprint,
		row.PendingSecondFactor,
		row.ExpiresAt.UTC(),
		time.Now().UTC(),
	)
	return err
}

func (r *credentialsRepo) GetCredential(ctx context.Context, key string) (domain.CredentialRow, error) {
	var row domain.CredentialRow
	err := r.db.QueryRowContext(ctx, `
		SELECT key, encoded, refresh_fingerprint, pending_second_factor, expires_at, updated_at
		FROM credentials WHERE key = ?`, key).
		Scan(&row.Key, &row.Encoded, &row.RefreshFingerprint, &row.PendingSecondFactor,
			&row.ExpiresAt, &row.UpdatedAt)
	if err != nil {
		return domain.CredentialRow{}, mapNotFound(err)
	}
	return row, nil
}

func (r *credentialsRepo) DeleteCredential(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, key)
	return err
}

func (r *credentialsRepo) DeleteExpiredCredentials(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
