package model

// UserAddress links a user to the building they live in, as stored in the
// `user_address` table. A user has at most one address.
type UserAddress struct {
	ID              uint64 // user_address.id
	UserID          uint64 // user_address.user_id
	BuildingID      uint64 // user_address.building_id
	ApartmentNumber string // user_address.apartment_number
}

// UserAddressDetail is the joined read model for address lookups: the
// resident plus the building address and apartment number.
type UserAddressDetail struct {
	ID   uint64 `json:"id"`
	User struct {
		ID        uint64 `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"user"`
	Address struct {
		ID              uint64  `json:"id"`
		Street          string  `json:"street"`
		Number          *string `json:"number"`
		BlockNumber     *string `json:"building_block_number"`
		ApartmentNumber string  `json:"apartment_number"`
		City            string  `json:"city"`
		PostalCode      string  `json:"postal_code"`
	} `json:"address"`
}
