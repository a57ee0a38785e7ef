// models/appointment.go
package models

import "time"

// AppointmentStatus is the appointment lifecycle state. Appointments are never
// deleted; the only transition is Active -> Cancelled.
type AppointmentStatus string

const (
	AppointmentActive    AppointmentStatus = "active"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// Appointment represents a confirmed booking of a doctor's slot by a patient.
type Appointment struct {
	ID        string            `bson:"id" json:"id"`
	DoctorID  string            `bson:"doctor_id" json:"doctor_id"`
	PatientID string            `bson:"patient_id" json:"patient_id"`
	StartTime time.Time         `bson:"start_time" json:"start_time"` // UTC; implicit SlotDuration length
	Status    AppointmentStatus `bson:"status" json:"status"`
	Type      string            `bson:"type,omitempty" json:"type,omitempty"`
	Notes     string            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
}

// Slot returns the appointment's time window as a slot value.
func (a Appointment) Slot() TimeSlot {
	return NewTimeSlot(a.StartTime)
}
