package repository

import (
	"context"
	"database/sql"

	"github.com/washplan/laundry-booking/internal/model"
)

// UserRepo provides CRUD operations on the `user` table. Emails are stored
// lower-cased and must be unique.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// EmailExists reports whether a user with the given email already exists.
// The comparison is case-insensitive.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	const q = `SELECT id FROM user WHERE email = LOWER(?)`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, email).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a user and returns the generated id. The caller is
// expected to have checked for duplicates first; a lost race against a
// concurrent insert still surfaces as ErrNoRowInserted.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, passwordHash, role string) (uint64, error) {
	const q = `INSERT IGNORE INTO user (first_name, last_name, email, password_hash, role)
	           VALUES (?, ?, LOWER(?), ?, ?)`
	result, err := r.db.ExecContext(ctx, q, firstName, lastName, email, passwordHash, role)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		return 0, ErrNoRowInserted
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByID returns the user with the given id or ErrNotFound.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, first_name, last_name, email, role FROM user WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Role)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update applies a partial update: nil fields keep their current value.
// It returns the updated row or ErrNotFound when the id does not exist.
func (r *UserRepo) Update(ctx context.Context, id uint64, firstName, lastName, email, passwordHash *string) (*model.User, error) {
	const q = `UPDATE user
	           SET first_name    = COALESCE(?, first_name),
	               last_name     = COALESCE(?, last_name),
	               email         = COALESCE(LOWER(?), email),
	               password_hash = COALESCE(?, password_hash)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, firstName, lastName, email, passwordHash, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the user row. Users are hard deleted, unlike bookings.
// Returns ErrNotFound when no row matched.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM user WHERE id = ?`
	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
