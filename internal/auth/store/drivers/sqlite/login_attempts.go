package sqlite

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
		`INSERT INTO login_attempts (id, email, ip, success, attempted_at) VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.IP, a.Success, toMillis(a.AttemptedAt),
	)
	return err
}

func (r *loginAttemptsRepo) DeleteLoginAttemptsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM login_attempts WHERE attempted_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
