package repository

import (
	"context"
	"database/sql"

	"github.com/washplan/laundry-booking/internal/model"
)

// UserAddressRepo provides access to the `user_address` table and the
// joined resident+address detail lookups.
type UserAddressRepo struct {
	db *sql.DB
}

// NewUserAddressRepo returns a new UserAddressRepo bound to the given database.
func NewUserAddressRepo(db *sql.DB) *UserAddressRepo { return &UserAddressRepo{db: db} }

// UserHasAddress reports whether the user already has an address. A user
// has at most one.
func (r *UserAddressRepo) UserHasAddress(ctx context.Context, userID uint64) (bool, error) {
	const q = `SELECT id FROM user_address WHERE user_id = ?`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, userID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a user address and returns the generated id.
func (r *UserAddressRepo) Create(ctx context.Context, userID, buildingID uint64, apartmentNumber string) (uint64, error) {
	const q = `INSERT IGNORE INTO user_address (user_id, building_id, apartment_number)
	           VALUES (?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, userID, buildingID, apartmentNumber)
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

const userAddressDetailSelect = `SELECT
	ua.id, ua.apartment_number,
	u.id, u.first_name, u.last_name, u.email,
	ba.id, ba.street, ba.number, ba.block_number, ba.city, ba.postal_code
FROM user_address AS ua
INNER JOIN user AS u ON u.id = ua.user_id
INNER JOIN building_address AS ba ON ba.id = ua.building_id`

func scanUserAddressDetail(scan func(dest ...any) error) (*model.UserAddressDetail, error) {
	var det model.UserAddressDetail
	var baNumber, baBlock sql.NullString
	err := scan(
		&det.ID, &det.Address.ApartmentNumber,
		&det.User.ID, &det.User.FirstName, &det.User.LastName, &det.User.Email,
		&det.Address.ID, &det.Address.Street, &baNumber, &baBlock, &det.Address.City, &det.Address.PostalCode,
	)
	if err != nil {
		return nil, err
	}
	if baNumber.Valid {
		n := baNumber.String
		det.Address.Number = &n
	}
	if baBlock.Valid {
		b := baBlock.String
		det.Address.BlockNumber = &b
	}
	return &det, nil
}

// GetDetailByID returns the joined detail for an address id, or ErrNotFound.
func (r *UserAddressRepo) GetDetailByID(ctx context.Context, id uint64) (*model.UserAddressDetail, error) {
	q := userAddressDetailSelect + ` WHERE ua.id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	det, err := scanUserAddressDetail(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// GetDetailByUser returns the joined detail for a user's address, or
// ErrNotFound when the user has none.
func (r *UserAddressRepo) GetDetailByUser(ctx context.Context, userID uint64) (*model.UserAddressDetail, error) {
	q := userAddressDetailSelect + ` WHERE ua.user_id = ?`
	row := r.db.QueryRowContext(ctx, q, userID)
	det, err := scanUserAddressDetail(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// Delete removes the user address row or returns ErrNotFound.
func (r *UserAddressRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM user_address WHERE id = ?`
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
