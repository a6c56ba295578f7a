package models

import (
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

// Defaults applied when a course is created without explicit values.
const (
	DefaultDurationMonths = 12
	DefaultSeatsTotal     = 30
)

// Course is a programme applicants can be admitted to.
// SeatsTaken always equals the number of its applicants in StatusAdmitted
// and stays within [0, SeatsTotal].
type Course struct {
	ID             int64   `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	DurationMonths int     `json:"durationMonths" db:"duration_months"`
	SeatsTotal     int     `json:"seatsTotal" db:"seats_total"`
	SeatsTaken     int     `json:"seatsTaken" db:"seats_taken"`
	Description    *string `json:"description,omitempty" db:"description"` // Nullable
}

// SeatsAvailable returns the number of free seats, never negative.
func (c *Course) SeatsAvailable() int {
	if free := c.SeatsTotal - c.SeatsTaken; free > 0 {
		return free
	}
	return 0
}

// IsFull reports whether no seat is left.
func (c *Course) IsFull() bool {
	return c.SeatsTaken >= c.SeatsTotal
}

// Admit takes one seat. It fails with ErrNoSeatsAvailable and leaves the
// course untouched when the course is full.
func (c *Course) Admit() error {
	if c.IsFull() {
		return apperrors.ErrNoSeatsAvailable
	}
	c.SeatsTaken++
	return nil
}

// Release frees one seat, floored at zero.
func (c *Course) Release() {
	if c.SeatsTaken > 0 {
		c.SeatsTaken--
	}
}

// Resize changes the capacity and clamps SeatsTaken to it. Admitted
// applicants beyond the new capacity keep their status; only the counter is
// clamped. It reports whether SeatsTaken was reduced.
func (c *Course) Resize(seatsTotal int) bool {
	c.SeatsTotal = seatsTotal
	if c.SeatsTaken > c.SeatsTotal {
		c.SeatsTaken = c.SeatsTotal
		return true
	}
	return false
}

// ApplyTransition updates the seat counter for an applicant of this course
// moving from one status to another.
//
//	non-Admitted -> Admitted  takes a seat, or fails when full
//	Admitted -> non-Admitted  frees a seat
//	anything else             leaves the counter alone
//
// It reports whether the counter changed.
func (c *Course) ApplyTransition(from, to ApplicantStatus) (bool, error) {
	switch {
	case from != StatusAdmitted && to == StatusAdmitted:
		if err := c.Admit(); err != nil {
			return false, err
		}
		return true, nil
	case from == StatusAdmitted && to != StatusAdmitted:
		before := c.SeatsTaken
		c.Release()
		return c.SeatsTaken != before, nil
	default:
		return false, nil
	}
}
