package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking. Bookings are
// never physically deleted; cancellation flips the status to inactive so
// the history stays queryable.
type BookingStatus string

const (
	BookingActive   BookingStatus = "active"
	BookingInactive BookingStatus = "inactive"
)

// Booking represents one reservation of a machine by a user for a time
// interval, as stored in the `booking` table. Start and end are kept in
// UTC. The identity of a booking (user, machine, window) is immutable
// after creation; only the status may change.
//
// Fields:
//
//	ID        – primary key identifier.
//	UserID    – user holding the reservation.
//	MachineID – machine being reserved.
//	StartTime – start of the window (UTC).
//	EndTime   – end of the window (UTC).
//	Status    – active or inactive.
type Booking struct {
	ID        uint64        // booking.id
	UserID    uint64        // booking.user_id
	MachineID uint64        // booking.machine_id
	StartTime time.Time     // booking.start_time
	EndTime   time.Time     // booking.end_time
	Status    BookingStatus // booking.status
}
