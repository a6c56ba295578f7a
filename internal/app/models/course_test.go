package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/admissions/internal/pkg/apperrors"
)

func TestCourseApplyTransition(t *testing.T) {
	tests := []struct {
		name        string
		total       int
		taken       int
		from, to    ApplicantStatus
		wantTaken   int
		wantChanged bool
		wantErr     error
	}{
		{"applied to admitted takes a seat", 2, 0, StatusApplied, StatusAdmitted, 1, true, nil},
		{"shortlisted to admitted takes last seat", 2, 1, StatusShortlisted, StatusAdmitted, 2, true, nil},
		{"admission into full course fails", 1, 1, StatusApplied, StatusAdmitted, 1, false, apperrors.ErrNoSeatsAvailable},
		{"admission into zero capacity fails", 0, 0, StatusRejected, StatusAdmitted, 0, false, apperrors.ErrNoSeatsAvailable},
		{"admitted to rejected frees a seat", 3, 2, StatusAdmitted, StatusRejected, 1, true, nil},
		{"release is floored at zero", 3, 0, StatusAdmitted, StatusApplied, 0, false, nil},
		{"admitted to admitted is a no-op", 1, 1, StatusAdmitted, StatusAdmitted, 1, false, nil},
		{"applied to shortlisted is a no-op", 1, 1, StatusApplied, StatusShortlisted, 1, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Course{SeatsTotal: tt.total, SeatsTaken: tt.taken}

			changed, err := c.ApplyTransition(tt.from, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.wantTaken, c.SeatsTaken)
			assert.GreaterOrEqual(t, c.SeatsTaken, 0)
			assert.LessOrEqual(t, c.SeatsTaken, c.SeatsTotal)
		})
	}
}

func TestCourseAdmitThenRejectRoundTrip(t *testing.T) {
	c := &Course{SeatsTotal: 5, SeatsTaken: 0}

	_, err := c.ApplyTransition(StatusApplied, StatusAdmitted)
	require.NoError(t, err)
	assert.Equal(t, 1, c.SeatsTaken)

	_, err = c.ApplyTransition(StatusAdmitted, StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, 0, c.SeatsTaken)
}

func TestCourseResizeClampsSeatsTaken(t *testing.T) {
	c := &Course{SeatsTotal: 5, SeatsTaken: 3}

	assert.True(t, c.Resize(2))
	assert.Equal(t, 2, c.SeatsTaken)
	assert.Equal(t, 0, c.SeatsAvailable())

	assert.False(t, c.Resize(10))
	assert.Equal(t, 2, c.SeatsTaken)
	assert.Equal(t, 8, c.SeatsAvailable())
}

func TestParseApplicantStatus(t *testing.T) {
	status, ok := ParseApplicantStatus("Admitted")
	assert.True(t, ok)
	assert.Equal(t, StatusAdmitted, status)

	for _, raw := range []string{"admitted", " Admitted", "Admitted ", "ADMITTED", ""} {
		_, ok = ParseApplicantStatus(raw)
		assert.False(t, ok, raw)
	}

	_, ok = ParseApplicantStatus("Enrolled")
	assert.False(t, ok)
	assert.False(t, ApplicantStatus("Enrolled").IsValid())
}
