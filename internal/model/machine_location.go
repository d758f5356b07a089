package model

// MachineLocationStatus enumerates where a machine currently stands:
// installed and usable, broken, or in storage.
type MachineLocationStatus string

const (
	LocationActive  MachineLocationStatus = "active"
	LocationBroken  MachineLocationStatus = "broken"
	LocationStorage MachineLocationStatus = "storage"
)

// MachineLocation places a machine in a building, as stored in the
// `machine_location` table. Number is the machine's position within the
// building; -1 means unnumbered.
type MachineLocation struct {
	ID         uint64                // machine_location.id
	MachineID  uint64                // machine_location.machine_id
	BuildingID uint64                // machine_location.building_id
	Number     int                   // machine_location.number (-1 when unset)
	Status     MachineLocationStatus // machine_location.status
}

// MachineLocationDetail is the joined read model returned by location
// lookups: the location plus its machine, machine type and building
// address.
type MachineLocationDetail struct {
	ID      uint64 `json:"id"`
	Machine struct {
		ID          uint64  `json:"id"`
		Type        string  `json:"type"`
		Brand       string  `json:"brand"`
		Model       string  `json:"model"`
		Description *string `json:"description"`
		Number      int     `json:"number"`
	} `json:"machine"`
	Address struct {
		ID          uint64  `json:"id"`
		Street      string  `json:"street"`
		Number      *string `json:"number"`
		BlockNumber *string `json:"building_block_number"`
		City        string  `json:"city"`
		PostalCode  string  `json:"postal_code"`
	} `json:"address"`
}
