package repository

import (
	"context"
	"database/sql"

	"github.com/washplan/laundry-booking/internal/model"
)

// MachineTypeRepo provides CRUD operations on the `machine_type` table.
type MachineTypeRepo struct {
	db *sql.DB
}

// NewMachineTypeRepo returns a new MachineTypeRepo bound to the given database.
func NewMachineTypeRepo(db *sql.DB) *MachineTypeRepo { return &MachineTypeRepo{db: db} }

// TypeExists reports whether a machine type with the given name exists.
func (r *MachineTypeRepo) TypeExists(ctx context.Context, typeName string) (bool, error) {
	const q = `SELECT id FROM machine_type WHERE type = ?`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, typeName).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Exists reports whether the machine type id exists. Used by machine
// creation and update to validate the foreign key before writing.
func (r *MachineTypeRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT id FROM machine_type WHERE id = ?`
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

// Create inserts a machine type and returns the generated id.
func (r *MachineTypeRepo) Create(ctx context.Context, typeName string) (uint64, error) {
	const q = `INSERT IGNORE INTO machine_type (type) VALUES (?)`
	result, err := r.db.ExecContext(ctx, q, typeName)
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

// GetByID returns the machine type with the given id or ErrNotFound.
func (r *MachineTypeRepo) GetByID(ctx context.Context, id uint64) (*model.MachineType, error) {
	const q = `SELECT id, type FROM machine_type WHERE id = ?`
	var mt model.MachineType
	err := r.db.QueryRowContext(ctx, q, id).Scan(&mt.ID, &mt.Type)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &mt, nil
}

// Update renames the machine type and returns the updated row.
func (r *MachineTypeRepo) Update(ctx context.Context, id uint64, typeName string) (*model.MachineType, error) {
	const q = `UPDATE machine_type SET type = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, typeName, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the machine type row or returns ErrNotFound.
func (r *MachineTypeRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM machine_type WHERE id = ?`
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
