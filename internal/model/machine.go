package model

// MachineType is a row in the `machine_type` table, e.g. "washer" or
// "dryer". Type names are unique.
type MachineType struct {
	ID   uint64 // machine_type.id
	Type string // machine_type.type
}

// Machine describes a physical appliance as stored in the `machine` table.
// Description is optional and nullable in the schema.
type Machine struct {
	ID            uint64  // machine.id
	MachineTypeID uint64  // machine.machine_type_id
	Brand         string  // machine.brand
	Model         string  // machine.model
	Description   *string // machine.description (nullable)
}
