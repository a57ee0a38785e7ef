package booking

import "fmt"

// Reservation outcome codes. Handlers map these to HTTP statuses; nothing in
// the service layer retries on any of them.
const (
	CodePastTime            = "past_time"            // slot start is already behind us
	CodeForbiddenRole       = "forbidden_role"       // caller's role may not book
	CodeSlotContended       = "slot_contended"       // another request holds the slot lock; retry shortly
	CodeDoctorNotFound      = "doctor_not_found"     // no doctor-role user with that ID
	CodeSlotConflict        = "slot_conflict"        // an active appointment overlaps; pick another slot
	CodeAppointmentNotFound = "appointment_not_found"
	CodeUnavailable         = "unavailable" // lock store or durable store unreachable
)

// ReservationError is a typed outcome from the reservation coordinator.
type ReservationError struct {
	Code    string
	Message string
	cause   error
}

func (e *ReservationError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ReservationError) Unwrap() error { return e.cause }

var (
	ErrPastTime = &ReservationError{
		Code:    CodePastTime,
		Message: "appointments cannot be booked in the past",
	}
	ErrForbiddenRole = &ReservationError{
		Code:    CodeForbiddenRole,
		Message: "only patients can create appointments",
	}
	ErrSlotContended = &ReservationError{
		Code:    CodeSlotContended,
		Message: "this time slot is currently being processed by another user, please try again",
	}
	ErrDoctorNotFound = &ReservationError{
		Code:    CodeDoctorNotFound,
		Message: "doctor not found",
	}
	ErrSlotConflict = &ReservationError{
		Code:    CodeSlotConflict,
		Message: "this doctor has another appointment at the selected time",
	}
	ErrAppointmentNotFound = &ReservationError{
		Code:    CodeAppointmentNotFound,
		Message: "appointment not found",
	}
)

// Unavailable wraps an infrastructure failure from either store.
func Unavailable(cause error) error {
	return &ReservationError{
		Code:    CodeUnavailable,
		Message: "service temporarily unavailable",
		cause:   cause,
	}
}

// CodeOf returns the reservation code carried by err, or "" for other errors.
func CodeOf(err error) string {
	if rerr, ok := err.(*ReservationError); ok {
		return rerr.Code
	}
	return ""
}
