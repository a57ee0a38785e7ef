package appointmentRepo

import (
	"context"
	"errors"

	"clinicbook/models"
)

// ErrDuplicateSlot is returned by Insert when the unique index on
// (doctor_id, start_time) for active appointments rejects the write. The
// reservation lock makes this unreachable in normal operation; the index is
// defense-in-depth behind it.
var ErrDuplicateSlot = errors.New("an active appointment already exists for this slot")

// ErrNotActive is returned by Cancel when no active appointment carries the
// given ID. Two cancels racing on the same appointment both pass the read
// that precedes them; the update filter decides, and the loser sees this.
var ErrNotActive = errors.New("no active appointment with this id")

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// FindOverlapping returns an active appointment for the doctor whose
	// interval overlaps the slot, or nil when the window is free. It always
	// reads the store's current committed state.
	FindOverlapping(ctx context.Context, doctorID string, slot models.TimeSlot) (*models.Appointment, error)
	// Insert persists a new appointment, assigning a unique ID.
	Insert(ctx context.Context, appt *models.Appointment) error
	// GetByID retrieves an appointment by ID. Returns (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// ListByDoctor retrieves all appointments where the user is the doctor.
	ListByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	// ListByPatient retrieves all appointments where the user is the patient.
	ListByPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	// Cancel transitions an active appointment to cancelled.
	Cancel(ctx context.Context, id string) error
}
