package model

import "time"

// User represents a resident account as stored in the `user` table. The
// plain password is never stored; only its bcrypt hash.
//
// Fields:
//
//	ID           – primary key identifier.
//	FirstName    – given name.
//	LastName     – family name.
//	Email        – unique, stored lower-cased.
//	PasswordHash – bcrypt hash of the password.
//	Role         – role name assigned at registration.
//	CreatedAt    – timestamp of creation.
//	UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // user.id
	FirstName    string    // user.first_name
	LastName     string    // user.last_name
	Email        string    // user.email
	PasswordHash string    // user.password_hash
	Role         string    // user.role
	CreatedAt    time.Time // user.created_at
	UpdatedAt    time.Time // user.updated_at
}
