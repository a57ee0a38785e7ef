package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"
)

// stubReservations returns canned outcomes for handler tests.
type stubReservations struct {
	reserveErr error
	appts      []models.Appointment
}

func (s *stubReservations) Reserve(_ context.Context, doctorID, patientID string, slot models.TimeSlot) (*models.Appointment, error) {
	if s.reserveErr != nil {
		return nil, s.reserveErr
	}
	return &models.Appointment{
		ID:        "appt-1",
		DoctorID:  doctorID,
		PatientID: patientID,
		StartTime: slot.Start,
		Status:    models.AppointmentActive,
	}, nil
}

func (s *stubReservations) MyAppointments(context.Context, models.Identity) ([]models.Appointment, error) {
	return s.appts, nil
}

func (s *stubReservations) CancelAppointment(context.Context, models.Identity, string) error {
	return s.reserveErr
}

func newTestRouter(svc booking.ReservationService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewAppointmentHandler(svc)
	// Stand-in for the auth middleware: a fixed patient identity.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.IdentityKey, models.Identity{ID: "pat-1", Role: models.RolePatient})
	})
	r.POST("/api/appointments", h.CreateAppointmentHandler)
	r.GET("/api/appointments/my", h.MyAppointmentsHandler)
	r.DELETE("/api/appointments/:id", h.CancelAppointmentHandler)
	return r
}

func postAppointment(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAppointmentStatusMapping(t *testing.T) {
	body := `{"doctor_id":"doc-1","start_time":"2030-04-01T09:00:00Z"}`
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"success", nil, http.StatusCreated},
		{"past time", booking.ErrPastTime, http.StatusBadRequest},
		{"forbidden role", booking.ErrForbiddenRole, http.StatusForbidden},
		{"doctor not found", booking.ErrDoctorNotFound, http.StatusNotFound},
		{"contended", booking.ErrSlotContended, http.StatusConflict},
		{"conflict", booking.ErrSlotConflict, http.StatusConflict},
		{"unavailable", booking.Unavailable(nil), http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&stubReservations{reserveErr: tc.err})
			w := postAppointment(r, body)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
		})
	}
}

func TestCreateAppointmentConflictCodesDistinct(t *testing.T) {
	body := `{"doctor_id":"doc-1","start_time":"2030-04-01T09:00:00Z"}`

	r := newTestRouter(&stubReservations{reserveErr: booking.ErrSlotContended})
	if w := postAppointment(r, body); !strings.Contains(w.Body.String(), booking.CodeSlotContended) {
		t.Errorf("contended response lacks its code: %s", w.Body.String())
	}

	r = newTestRouter(&stubReservations{reserveErr: booking.ErrSlotConflict})
	if w := postAppointment(r, body); !strings.Contains(w.Body.String(), booking.CodeSlotConflict) {
		t.Errorf("conflict response lacks its code: %s", w.Body.String())
	}
}

func TestCreateAppointmentRejectsBadInput(t *testing.T) {
	r := newTestRouter(&stubReservations{})

	if w := postAppointment(r, `{"start_time":"2030-04-01T09:00:00Z"}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing doctor_id: status = %d, want 400", w.Code)
	}
	if w := postAppointment(r, `{"doctor_id":"doc-1","start_time":"tomorrow"}`); w.Code != http.StatusBadRequest {
		t.Errorf("unparseable start_time: status = %d, want 400", w.Code)
	}
}

func TestParseSlotStartNaiveIsUTC(t *testing.T) {
	got, err := parseSlotStart("2030-04-01T09:00:00")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2030, 4, 1, 9, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}
}

func TestMyAppointmentsEmptyIsArray(t *testing.T) {
	r := newTestRouter(&stubReservations{})
	req := httptest.NewRequest(http.MethodGet, "/api/appointments/my", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Errorf("empty listing = %s, want []", body)
	}
}
