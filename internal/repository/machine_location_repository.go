package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/washplan/laundry-booking/internal/model"
)

// MachineLocationRepo provides CRUD operations on the `machine_location`
// table plus the joined detail lookups used by the read endpoints.
type MachineLocationRepo struct {
	db *sql.DB
}

// NewMachineLocationRepo returns a new MachineLocationRepo bound to the given database.
func NewMachineLocationRepo(db *sql.DB) *MachineLocationRepo { return &MachineLocationRepo{db: db} }

// MachineHasLocation reports whether the machine is already placed
// somewhere. A machine can stand in at most one building.
func (r *MachineLocationRepo) MachineHasLocation(ctx context.Context, machineID uint64) (bool, error) {
	const q = `SELECT id FROM machine_location WHERE machine_id = ?`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, machineID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// NumberTaken reports whether another machine already holds the given
// position number in the building. Unnumbered locations (-1) never clash.
func (r *MachineLocationRepo) NumberTaken(ctx context.Context, buildingID uint64, number int) (bool, error) {
	const q = `SELECT id FROM machine_location WHERE building_id = ? AND number = ?`
	var id uint64
	err := r.db.QueryRowContext(ctx, q, buildingID, number).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Create inserts a machine location and returns the generated id.
func (r *MachineLocationRepo) Create(ctx context.Context, machineID, buildingID uint64, number int, status model.MachineLocationStatus) (uint64, error) {
	const q = `INSERT IGNORE INTO machine_location (machine_id, building_id, number, status)
	           VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, machineID, buildingID, number, status)
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

const locationDetailSelect = `SELECT
	ml.id, ml.number,
	m.id, mt.type, m.brand, m.model, m.description,
	ba.id, ba.street, ba.number, ba.block_number, ba.city, ba.postal_code
FROM machine_type AS mt
INNER JOIN machine AS m ON m.machine_type_id = mt.id
INNER JOIN machine_location AS ml ON ml.machine_id = m.id
INNER JOIN building_address AS ba ON ba.id = ml.building_id`

func scanLocationDetail(scan func(dest ...any) error) (*model.MachineLocationDetail, error) {
	var det model.MachineLocationDetail
	var desc, baNumber, baBlock sql.NullString
	err := scan(
		&det.ID, &det.Machine.Number,
		&det.Machine.ID, &det.Machine.Type, &det.Machine.Brand, &det.Machine.Model, &desc,
		&det.Address.ID, &det.Address.Street, &baNumber, &baBlock, &det.Address.City, &det.Address.PostalCode,
	)
	if err != nil {
		return nil, err
	}
	if desc.Valid {
		d := desc.String
		det.Machine.Description = &d
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

// GetDetailByID returns the joined machine+address detail for a location,
// or ErrNotFound.
func (r *MachineLocationRepo) GetDetailByID(ctx context.Context, id uint64) (*model.MachineLocationDetail, error) {
	q := locationDetailSelect + ` WHERE ml.id = ?`
	row := r.db.QueryRowContext(ctx, q, id)
	det, err := scanLocationDetail(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return det, nil
}

// LocationFilter narrows ListDetails. Zero-valued fields are ignored.
type LocationFilter struct {
	MachineID  uint64
	BuildingID uint64
	Status     model.MachineLocationStatus
}

// ListDetails returns joined details for every location matching the
// filter, in id order.
func (r *MachineLocationRepo) ListDetails(ctx context.Context, f LocationFilter) ([]model.MachineLocationDetail, error) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if f.MachineID != 0 {
		conds = append(conds, "ml.machine_id = ?")
		args = append(args, f.MachineID)
	}
	if f.BuildingID != 0 {
		conds = append(conds, "ml.building_id = ?")
		args = append(args, f.BuildingID)
	}
	if f.Status != "" {
		conds = append(conds, "ml.status = ?")
		args = append(args, f.Status)
	}
	q := locationDetailSelect
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY ml.id"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]model.MachineLocationDetail, 0)
	for rows.Next() {
		det, err := scanLocationDetail(rows.Scan)
		if err != nil {
			return nil, err
		}
		details = append(details, *det)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}

// Update applies a partial update: nil fields keep their current value.
func (r *MachineLocationRepo) Update(ctx context.Context, id uint64, machineID, buildingID *uint64, number *int, status *model.MachineLocationStatus) (*model.MachineLocation, error) {
	const q = `UPDATE machine_location
	           SET machine_id  = COALESCE(?, machine_id),
	               building_id = COALESCE(?, building_id),
	               number      = COALESCE(?, number),
	               status      = COALESCE(?, status)
	           WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, q, machineID, buildingID, number, status, id); err != nil {
		return nil, err
	}
	const sel = `SELECT id, machine_id, building_id, number, status FROM machine_location WHERE id = ?`
	var ml model.MachineLocation
	err := r.db.QueryRowContext(ctx, sel, id).Scan(&ml.ID, &ml.MachineID, &ml.BuildingID, &ml.Number, &ml.Status)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ml, nil
}

// Delete removes the machine location row or returns ErrNotFound.
func (r *MachineLocationRepo) Delete(ctx context.Context, id uint64) error {
	const q = `DELETE FROM machine_location WHERE id = ?`
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
