package postgres

import (
	"context"
	"time"

	"github.com/amitmore-007/Recipe-Generator/internal/auth/domain"
	"github.com/amitmore-007/Recipe-Generator/pkg/idx"
)

type loginAttemptsRepo struct {
	db dbtx
}

func (r *loginAttemptsRepo) RecordLoginAttempt(ctx context.Context, a domain.LoginAttempt) error {
	if a.ID == "" {
		a.ID = idx.New().String()
	}
	if a.AttemptedAt.IsZero() {
		a.AttemptedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_attempts (id, email, ip, success, attempted_at) VALUES ($1, $2, $3, $4, $5)`,
		a.ID, a.Email, a.IP, a.Success, a.AttemptedAt.UTC(),
	)
	return err
}

func (r *loginAttemptsRepo) DeleteLoginAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM login_attempts WHERE attempted_at < $1`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
