package repositories

import (
	"context"

	intdb "dpxcruise/internal/db"
	"dpxcruise/internal/domain/models"
)

type UserRepository struct {
	DB intdb.DBTX
}

func (r UserRepository) db() intdb.DBTX { return conn(r.DB) }

const userColumns = `user_id, username, email, password_hash, role`

func (r UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM dpx_users WHERE email = ? LIMIT 1`, email).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		return models.User{}, notFound(err, "user")
	}
	return u, nil
}

func (r UserRepository) GetByID(ctx context.Context, id int64) (models.User, error) {
	var u models.User
	err := r.db().QueryRowContext(ctx, `SELECT `+userColumns+` FROM dpx_users WHERE user_id = ? LIMIT 1`, id).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role)
	if err != nil {
		return models.User{}, notFound(err, "user")
	}
	return u, nil
}

func (r UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var n int
	if err := r.db().QueryRowContext(ctx, `SELECT COUNT(*) FROM dpx_users WHERE email = ?`, email).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	res, err := r.db().ExecContext(ctx,
		`INSERT INTO dpx_users (username, password_hash, email, role) VALUES (?, ?, ?, ?)`,
		u.Username, u.PasswordHash, u.Email, u.Role)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r UserRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_users SET username = ? WHERE user_id = ?`, username, id)
	return err
}

func (r UserRepository) UpdatePasswordByID(ctx context.Context, id int64, hash string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_users SET password_hash = ? WHERE user_id = ?`, hash, id)
	return err
}

func (r UserRepository) UpdatePasswordByEmail(ctx context.Context, email, hash string) error {
	_, err := r.db().ExecContext(ctx, `UPDATE dpx_users SET password_hash = ? WHERE email = ?`, hash, email)
	return err
}

func (r UserRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	res, err := r.db().ExecContext(ctx, `DELETE FROM dpx_users WHERE email = ?`, email)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
