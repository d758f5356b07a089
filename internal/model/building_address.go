package model

// BuildingAddress is a row in the `building_address` table. Number and
// BlockNumber are optional; a building is identified by the combination of
// street, number, block number, postal code and city.
type BuildingAddress struct {
	ID          uint64  // building_address.id
	Street      string  // building_address.street
	Number      *string // building_address.number (nullable)
	BlockNumber *string // building_address.block_number (nullable)
	City        string  // building_address.city
	PostalCode  string  // building_address.postal_code
}
