package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, display_name, is_admin, is_blocked,
	warning_count, restart_count, blocked_reason, blocked_at, created_at, updated_at`

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, email, password_hash, display_name, is_admin, is_blocked,
			warning_count, restart_count, blocked_reason, blocked_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.DisplayName, u.IsAdmin, u.IsBlocked,
		u.WarningCount, u.RestartCount,
		mapOptionalString(u.BlockedReason), mapOptionalTime(u.BlockedAt),
		u.CreatedAt, u.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *usersRepo) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *usersRepo) SetAdmin(ctx context.Context, userID string) error {
	return r.exec(ctx,
		`UPDATE users SET is_admin = 1, updated_at = ? WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) SetWarningCount(ctx context.Context, userID string, count int) error {
	return r.exec(ctx,
		`UPDATE users SET warning_count = ?, updated_at = ? WHERE id = ?`,
		count, time.Now().UTC(), userID)
}

func (r *usersRepo) SetRestartCount(ctx context.Context, userID string, count int) error {
	return r.exec(ctx,
		`UPDATE users SET restart_count = ?, updated_at = ? WHERE id = ?`,
		count, time.Now().UTC(), userID)
}

func (r *usersRepo) Block(ctx context.Context, userID, reason string, at time.Time) error {
	return r.exec(ctx, `
		UPDATE users
		SET is_blocked = 1, blocked_reason = ?, blocked_at = ?, updated_at = ?
		WHERE id = ?`,
		reason, at, time.Now().UTC(), userID)
}

func (r *usersRepo) Unblock(ctx context.Context, userID string) error {
	return r.exec(ctx, `
		UPDATE users
		SET is_blocked = 0, warning_count = 0, restart_count = 0,
		    blocked_reason = NULL, blocked_at = NULL, updated_at = ?
		WHERE id = ?`,
		time.Now().UTC(), userID)
}

func (r *usersRepo) Delete(ctx context.Context, userID string) error {
	return r.exec(ctx, `DELETE FROM users WHERE id = ?`, userID)
}

// exec runs a mutation that must touch exactly one existing row.
func (r *usersRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u             domain.User
		blockedReason sql.NullString
		blockedAt     sql.NullTime
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsAdmin, &u.IsBlocked,
		&u.WarningCount, &u.RestartCount, &blockedReason, &blockedAt,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.BlockedReason = mapNullStringPtr(blockedReason)
	u.BlockedAt = mapNullTimePtr(blockedAt)
	return u, nil
}
