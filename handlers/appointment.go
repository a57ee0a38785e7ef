package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"
	"clinicbook/utils"
)

// AppointmentHandler serves the reservation endpoints.
type AppointmentHandler struct {
	Reservations booking.ReservationService
}

func NewAppointmentHandler(svc booking.ReservationService) *AppointmentHandler {
	return &AppointmentHandler{Reservations: svc}
}

// parseSlotStart accepts RFC3339 instants; a timestamp without an offset is
// treated as UTC.
func parseSlotStart(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", raw)
}

// statusFor maps reservation outcome codes to HTTP statuses. Contention and
// conflict both surface as 409 with distinct codes so clients can retry the
// former and re-plan the latter.
func statusFor(code string) int {
	switch code {
	case booking.CodePastTime:
		return http.StatusBadRequest
	case booking.CodeForbiddenRole:
		return http.StatusForbidden
	case booking.CodeDoctorNotFound, booking.CodeAppointmentNotFound:
		return http.StatusNotFound
	case booking.CodeSlotContended, booking.CodeSlotConflict:
		return http.StatusConflict
	case booking.CodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondReservationError(c *gin.Context, err error) {
	code := booking.CodeOf(err)
	if code == "" {
		utils.GetLogger().Error("Unexpected reservation failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	if code == booking.CodeUnavailable {
		utils.GetLogger().Error("Reservation infrastructure failure", zap.Error(err))
	}
	c.JSON(statusFor(code), gin.H{"error": err.Error(), "code": code})
}

// CreateAppointmentHandler handles POST /api/appointments.
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	var req struct {
		DoctorID  string `json:"doctor_id" binding:"required"`
		StartTime string `json:"start_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	start, err := parseSlotStart(req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time", "details": err.Error()})
		return
	}

	appt, err := h.Reservations.Reserve(c.Request.Context(), req.DoctorID, caller.ID, models.NewTimeSlot(start))
	if err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// MyAppointmentsHandler handles GET /api/appointments/my.
func (h *AppointmentHandler) MyAppointmentsHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	appts, err := h.Reservations.MyAppointments(c.Request.Context(), caller)
	if err != nil {
		respondReservationError(c, err)
		return
	}
	if appts == nil {
		appts = []models.Appointment{}
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointmentHandler handles DELETE /api/appointments/:id.
func (h *AppointmentHandler) CancelAppointmentHandler(c *gin.Context) {
	caller, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing identity"})
		return
	}

	if err := h.Reservations.CancelAppointment(c.Request.Context(), caller, c.Param("id")); err != nil {
		respondReservationError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}
