// models/timeslot.go
package models

import "time"

// SlotDuration is the fixed length of every appointment slot.
const SlotDuration = time.Hour

// TimeSlot is a half-open interval [Start, Start+SlotDuration). It is a value
// object: two slots with the same start are the same slot.
type TimeSlot struct {
	Start time.Time `json:"start"`
}

// NewTimeSlot normalizes start to UTC. Inputs without an offset are taken as
// UTC at the decoding boundary, so Start is always comparable directly.
func NewTimeSlot(start time.Time) TimeSlot {
	return TimeSlot{Start: start.UTC()}
}

// End returns the exclusive end instant of the slot.
func (s TimeSlot) End() time.Time {
	return s.Start.Add(SlotDuration)
}

// Overlaps reports whether the two intervals intersect. Slots that merely
// touch (one ends exactly where the other starts) do not overlap.
func (s TimeSlot) Overlaps(other TimeSlot) bool {
	return s.Start.Before(other.End()) && other.Start.Before(s.End())
}

// IsPast reports whether the slot starts before now, both compared in UTC.
func (s TimeSlot) IsPast(now time.Time) bool {
	return s.Start.Before(now.UTC())
}
