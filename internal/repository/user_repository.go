package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/flyexpress/internal/model"
	"github.com/iliyamo/flyexpress/internal/utils"
)

// UserRepo manages the `user` table.  The user id is the email the
// account registered with, normalized to lower case.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with a freshly hashed password.
func (r *UserRepo) Create(ctx context.Context, id, password string, cost int) error {
	id = strings.ToLower(strings.TrimSpace(id))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO user (id, password) VALUES (?,?)", id, hash)
	if err != nil {
		// 1062 = duplicate entry on the primary key
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// GetByID fetches a user by normalized id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, password FROM user WHERE id = ? LIMIT 1", id).
		Scan(&u.ID, &u.PasswordHash)
	return u, err
}
