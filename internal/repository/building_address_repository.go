package repository

import (
	"context"
	"database/sql"

	"github.com/washplan/laundry-booking/internal/model"
)

// BuildingAddressRepo provides CRUD operations on the `building_address`
// table. A building is identified by the full combination of street,
// number, block number, postal code and city.
type BuildingAddressRepo struct {
	db *sql.DB
}

// NewBuildingAddressRepo returns a new BuildingAddressRepo bound to the given database.
func NewBuildingAddressRepo(db *sql.DB) *BuildingAddressRepo { return &BuildingAddressRepo{db: db} }

// Exists reports whether the building id exists.
func (r *BuildingAddressRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT id FROM building_address WHERE id = ?`
	var got uint64
	err := r.db.QueryRowContext(ctx, q, id).Scan(&got)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddressExists reports whether an identical address row already exists.
// NULL-able columns are compared with the null-safe operator so a nil
// number matches a NULL column.
func (r *BuildingAddressRepo) AddressExists(ctx context.Context, street string, number, blockNumber *string, city, postalCode string) (bool, error) {
	const q = `SELECT id FROM building_address
	           WHERE street = ? AND number <=> ? AND block_number <=> ? AND city = ? AND postal_code = ?`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, street, number, blockNumber, city, postalCode).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a building address and returns the generated id.
func (r *BuildingAddressRepo) Create(ctx context.Context, street string, number, blockNumber *string, city, postalCode string) (uint64, error) {
	const q = `INSERT IGNORE INTO building_address (street, number, block_number, city, postal_code)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, street, number, blockNumber, city, postalCode)
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

// GetByID returns the building address with the given id or ErrNotFound.
func (r *BuildingAddressRepo) GetByID(ctx context.Context, id uint64) (*model.BuildingAddress, error) {
	const q = `SELECT id, street, number, block_number, city, postal_code FROM building_address WHERE id = ?`
	var ba model.BuildingAddress
	var number, block sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&ba.ID, &ba.Street, &number, &block, &ba.City, &ba.PostalCode)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if number.Valid {
		n := number.String
		ba.Number = &n
	}
	if block.Valid {
		b := block.String
		ba.BlockNumber = &b
	}
	return &ba, nil
}

// Update applies a partial update. Street, city and postal code keep their
// value when nil; number and block number are overwritten unconditionally,
// so passing nil clears them. This mirrors how address corrections work:
// a building can lose its number but never its street.
func (r *BuildingAddressRepo) Update(ctx context.Context, id uint64, street, number, blockNumber, city, postalCode *string) (*model.BuildingAddress, error) {
	const q = `UPDATE building_address
	           SET street       = COALESCE(?, street),
	               number       = ?,
	               block_number = ?,
	               city         = COALESCE(?, city),
	               postal_code  = COALESCE(?, postal_code)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, street, number, blockNumber, city, postalCode, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the building address row or returns ErrNotFound.
func (r *BuildingAddressRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM building_address WHERE id = ?`
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
