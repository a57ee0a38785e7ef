package booking

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	appointmentRepo "clinicbook/database/repository/appointment"
	userRepo "clinicbook/database/repository/user"
	"clinicbook/lock"
	"clinicbook/models"
	"clinicbook/utils"
)

// DefaultLockTTL bounds how long a crashed reservation can keep a slot key
// unavailable. It must exceed the conflict-check plus insert sequence by a
// comfortable margin.
const DefaultLockTTL = 10 * time.Second

// DefaultReservationService implements ReservationService. All coordination
// for the no-double-booking invariant happens through the lock store and the
// durable store, so the guarantee holds across horizontally scaled instances.
type DefaultReservationService struct {
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Locker       lock.Locker
	LockTTL      time.Duration

	// Now is the time source for the past-slot check. Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultReservationService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *DefaultReservationService) lockTTL() time.Duration {
	if s.LockTTL > 0 {
		return s.LockTTL
	}
	return DefaultLockTTL
}

// Reserve books the slot for the patient.
//
// The slot lock closes the race window between the overlap check and the
// insert for requests targeting the identical (doctor, start) key. Requests
// for overlapping-but-distinct starts never contend on the key; those are
// caught by the durable overlap query, which is why the query stays in place
// even with the lock held.
func (s *DefaultReservationService) Reserve(ctx context.Context, doctorID, patientID string, slot models.TimeSlot) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if slot.IsPast(s.now()) {
		return nil, ErrPastTime
	}

	requester, err := s.Users.GetByID(ctx, patientID)
	if err != nil {
		return nil, Unavailable(err)
	}
	if requester == nil {
		return nil, ErrForbiddenRole
	}
	switch requester.Role {
	case models.RolePatient:
		// allowed to book
	case models.RoleDoctor, models.RoleAdmin:
		return nil, ErrForbiddenRole
	default:
		return nil, ErrForbiddenRole
	}

	key := lock.SlotKey(doctorID, slot)
	acquired, err := s.Locker.TryAcquire(ctx, key, s.lockTTL())
	if err != nil {
		logger.Error("reservation lock store unreachable", zap.String("key", key), zap.Error(err))
		return nil, Unavailable(err)
	}
	if !acquired {
		return nil, ErrSlotContended
	}
	defer func() {
		if releaseErr := s.Locker.Release(ctx, key); releaseErr != nil {
			logger.Warn("failed to release reservation lock", zap.String("key", key), zap.Error(releaseErr))
		}
	}()

	// Resolved after the lock so a contended nonexistent doctor still reports
	// not-found rather than a generic lock failure.
	doctor, err := s.Users.GetByID(ctx, doctorID)
	if err != nil {
		return nil, Unavailable(err)
	}
	if doctor == nil || doctor.Role != models.RoleDoctor {
		return nil, ErrDoctorNotFound
	}

	conflicting, err := s.Appointments.FindOverlapping(ctx, doctorID, slot)
	if err != nil {
		return nil, Unavailable(err)
	}
	if conflicting != nil {
		return nil, ErrSlotConflict
	}

	appt := &models.Appointment{
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: slot.Start,
		Status:    models.AppointmentActive,
	}
	if err := s.Appointments.Insert(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrDuplicateSlot) {
			return nil, ErrSlotConflict
		}
		return nil, Unavailable(err)
	}

	logger.Info("appointment reserved",
		zap.String("id", appt.ID),
		zap.String("doctor_id", doctorID),
		zap.String("patient_id", patientID),
		zap.Time("start_time", appt.StartTime),
	)
	return appt, nil
}

// MyAppointments lists the caller's appointments based on role. No locking:
// a plain read of the durable store.
func (s *DefaultReservationService) MyAppointments(ctx context.Context, caller models.Identity) ([]models.Appointment, error) {
	var (
		appts []models.Appointment
		err   error
	)
	switch caller.Role {
	case models.RoleDoctor:
		appts, err = s.Appointments.ListByDoctor(ctx, caller.ID)
	case models.RolePatient, models.RoleAdmin:
		appts, err = s.Appointments.ListByPatient(ctx, caller.ID)
	default:
		return nil, ErrForbiddenRole
	}
	if err != nil {
		return nil, Unavailable(err)
	}
	return appts, nil
}

// CancelAppointment flips one of the caller's active appointments to
// cancelled. Doctors may cancel appointments they host, patients those they
// booked, admins any.
func (s *DefaultReservationService) CancelAppointment(ctx context.Context, caller models.Identity, appointmentID string) error {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return Unavailable(err)
	}
	if appt == nil || appt.Status != models.AppointmentActive {
		return ErrAppointmentNotFound
	}

	switch caller.Role {
	case models.RoleAdmin:
	case models.RoleDoctor:
		if appt.DoctorID != caller.ID {
			return ErrForbiddenRole
		}
	case models.RolePatient:
		if appt.PatientID != caller.ID {
			return ErrForbiddenRole
		}
	default:
		return ErrForbiddenRole
	}

	if err := s.Appointments.Cancel(ctx, appointmentID); err != nil {
		// The read above is not atomic with the update: a concurrent cancel
		// may have won in between. That is a missing appointment, not an
		// infrastructure failure.
		if errors.Is(err, appointmentRepo.ErrNotActive) {
			return ErrAppointmentNotFound
		}
		return Unavailable(err)
	}
	utils.GetLogger().Info("appointment cancelled",
		zap.String("id", appointmentID),
		zap.String("by", caller.ID),
	)
	return nil
}
