package booking

import (
	"context"

	"clinicbook/models"
)

// ReservationService books doctor slots for patients. It is the only
// component allowed to create an appointment.
type ReservationService interface {
	// Reserve books the slot for the patient, guaranteeing that no two active
	// appointments for the same doctor overlap, even under concurrent calls.
	// Failures carry a ReservationError code.
	Reserve(ctx context.Context, doctorID, patientID string, slot models.TimeSlot) (*models.Appointment, error)
	// MyAppointments lists the caller's appointments: doctors see bookings
	// where they are the doctor, everyone else those where they are the patient.
	MyAppointments(ctx context.Context, caller models.Identity) ([]models.Appointment, error)
	// CancelAppointment transitions one of the caller's active appointments to
	// cancelled, freeing its slot for subsequent reservations.
	CancelAppointment(ctx context.Context, caller models.Identity, appointmentID string) error
}
