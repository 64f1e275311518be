package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/medix-app/medix-backend/internal/model"
)

// UserRepo is the MySQL-backed account directory.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new account and returns its id. A unique-key
// violation on login maps to ErrDuplicateLogin.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (uint64, error) {
	u.Login = strings.ToLower(strings.TrimSpace(u.Login))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, login, password_hash, speciality, role, is_online) VALUES (?,?,?,?,?,?)",
		u.Username, u.Login, u.PasswordHash, u.Speciality, string(u.Role), u.IsOnline)
	if err != nil {
		// MySQL error 1062: duplicate entry for a unique key.
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrDuplicateLogin
		}
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	return uint64(id), nil
}

// GetByLogin fetches an account by its normalized login.
func (r *UserRepo) GetByLogin(ctx context.Context, login string) (model.User, error) {
	login = strings.ToLower(strings.TrimSpace(login))
	return r.get(ctx, "login=?", login)
}

// GetByID fetches an account by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.get(ctx, "id=?", id)
}

func (r *UserRepo) get(ctx context.Context, where string, arg any) (model.User, error) {
	var u model.User
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,username,login,password_hash,speciality,role,is_online,created_at FROM users WHERE "+where+" LIMIT 1",
		arg).Scan(&u.ID, &u.Username, &u.Login, &u.PasswordHash, &u.Speciality, &role, &u.IsOnline, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	u.Role = model.Role(role)
	return u, nil
}

// List returns every account ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,username,login,password_hash,speciality,role,is_online,created_at FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		var role string
		if err := rows.Scan(&u.ID, &u.Username, &u.Login, &u.PasswordHash, &u.Speciality, &role, &u.IsOnline, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		u.Role = model.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

// SetOnline flips the presence flag for an account.
func (r *UserRepo) SetOnline(ctx context.Context, id uint64, online bool) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET is_online=? WHERE id=?", online, id)
	if err != nil {
		return fmt.Errorf("set online: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Row may exist with the flag already at the requested value;
		// confirm before reporting a missing account.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the total number of accounts and how many are online.
func (r *UserRepo) Count(ctx context.Context) (total, online uint64, err error) {
	err = r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*), COALESCE(SUM(is_online),0) FROM users").Scan(&total, &online)
	if err != nil {
		return 0, 0, fmt.Errorf("count users: %w", err)
	}
	return total, online, nil
}
