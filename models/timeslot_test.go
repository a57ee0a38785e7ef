package models

import (
	"testing"
	"time"
)

func slotAt(hour, min int) TimeSlot {
	return NewTimeSlot(time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC))
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b TimeSlot
		want bool
	}{
		{"identical", slotAt(10, 0), slotAt(10, 0), true},
		{"half overlap", slotAt(10, 0), slotAt(10, 30), true},
		{"half overlap reversed", slotAt(10, 30), slotAt(10, 0), true},
		{"boundary touch", slotAt(10, 0), slotAt(11, 0), false},
		{"boundary touch reversed", slotAt(11, 0), slotAt(10, 0), false},
		{"disjoint", slotAt(9, 0), slotAt(12, 0), false},
		{"one minute in", slotAt(10, 0), slotAt(10, 59), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tc.a.Start, tc.b.Start, got, tc.want)
			}
		})
	}
}

func TestTimeSlotEnd(t *testing.T) {
	s := slotAt(9, 0)
	if got := s.End(); !got.Equal(s.Start.Add(time.Hour)) {
		t.Errorf("End() = %v, want one hour after start", got)
	}
}

func TestTimeSlotIsPast(t *testing.T) {
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	past := NewTimeSlot(now.Add(-time.Second))
	if !past.IsPast(now) {
		t.Error("slot one second before now should be past")
	}

	future := NewTimeSlot(now.Add(time.Second))
	if future.IsPast(now) {
		t.Error("slot one second after now should not be past")
	}

	exact := NewTimeSlot(now)
	if exact.IsPast(now) {
		t.Error("slot starting exactly now should not be past")
	}
}

func TestTimeSlotNormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	local := time.Date(2026, 3, 14, 13, 0, 0, 0, loc)
	s := NewTimeSlot(local)

	if s.Start.Location() != time.UTC {
		t.Errorf("slot start location = %v, want UTC", s.Start.Location())
	}
	if !s.Start.Equal(time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("slot start = %v, want 10:00 UTC", s.Start)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{RoleAdmin, RoleDoctor, RolePatient} {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}
	if Role("nurse").Valid() {
		t.Error("unknown role should not be valid")
	}
}
