// Package repository implements data access over MySQL. Sentinel errors
// defined here let handlers and the booking engine distinguish expected
// storage outcomes from connectivity failures without string matching.
package repository

import "errors"

// ErrNotFound is returned when a lookup matches no row. Callers translate
// it into the NotFound business error.
var ErrNotFound = errors.New("no matching row")

// ErrNoRowInserted is returned when an insert was absorbed by a uniqueness
// constraint and produced no row. It is distinct from a quota rejection.
var ErrNoRowInserted = errors.New("no row inserted")

// ErrAlreadyExists is returned by create paths that perform an explicit
// duplicate check before inserting (users, machine types, addresses).
var ErrAlreadyExists = errors.New("row already exists")
