package repository

import (
	"context"
	"database/sql"

	"github.com/washplan/laundry-booking/internal/model"
)

// MachineRepo provides CRUD operations on the `machine` table.
type MachineRepo struct {
	db *sql.DB
}

// NewMachineRepo returns a new MachineRepo bound to the given database.
func NewMachineRepo(db *sql.DB) *MachineRepo { return &MachineRepo{db: db} }

// Exists reports whether the machine id exists.
func (r *MachineRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	const q = `SELECT id FROM machine WHERE id = ?`
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

// Create inserts a machine and returns the generated id. Description may
// be nil.
func (r *MachineRepo) Create(ctx context.Context, machineTypeID uint64, brand, mdl string, description *string) (uint64, error) {
	const q = `INSERT IGNORE INTO machine (machine_type_id, brand, model, description)
	           VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, machineTypeID, brand, mdl, description)
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

// GetByID returns the machine with the given id or ErrNotFound.
func (r *MachineRepo) GetByID(ctx context.Context, id uint64) (*model.Machine, error) {
	const q = `SELECT id, machine_type_id, brand, model, description FROM machine WHERE id = ?`
	var m model.Machine
	var desc sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&m.ID, &m.MachineTypeID, &m.Brand, &m.Model, &desc)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		m.Description = &d
	}
	return &m, nil
}

// Update applies a partial update: nil fields keep their current value.
func (r *MachineRepo) Update(ctx context.Context, id uint64, machineTypeID *uint64, brand, mdl, description *string) (*model.Machine, error) {
	const q = `UPDATE machine
	           SET machine_type_id = COALESCE(?, machine_type_id),
	               brand           = COALESCE(?, brand),
	               model           = COALESCE(?, model),
	               description     = COALESCE(?, description)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, machineTypeID, brand, mdl, description, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Delete removes the machine row or returns ErrNotFound.
func (r *MachineRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM machine WHERE id = ?`
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
