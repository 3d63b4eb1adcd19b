package editor

import (
	"errors"
	"fmt"

	"github.com/example/staff-calendar/internal/calendar"
)

var (
	// ErrNoSelection is returned when a mutation requires a selected
	// appointment and none is selected.
	ErrNoSelection = errors.New("editor: no appointment selected")

	// ErrCustomerRequired is returned when distribute is started without a
	// customer name.
	ErrCustomerRequired = errors.New("editor: customer name required")

	// ErrInvalidDuration is returned for non-positive slot counts or slots
	// extending past the end of the day.
	ErrInvalidDuration = errors.New("editor: invalid duration")

	// ErrNotDistributing is returned when a placement arrives outside
	// distribute mode.
	ErrNotDistributing = errors.New("editor: not in distribute mode")

	// ErrNoMovePending is returned when a move target arrives without a
	// pending move.
	ErrNoMovePending = errors.New("editor: no move pending")

	// ErrAlreadySeries is returned when MakeSeries targets an appointment
	// that already belongs to a series.
	ErrAlreadySeries = errors.New("editor: appointment already recurring")

	// ErrInvalidInterval is returned when MakeSeries receives a non-positive
	// week interval.
	ErrInvalidInterval = errors.New("editor: interval must be at least one week")
)

// OverlapError reports which existing appointment blocks a mutation.
type OverlapError struct {
	Existing calendar.Appointment
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("editor: overlaps %s %s-%s (%s)",
		e.Existing.Date, e.Existing.Start, e.Existing.End, e.Existing.CustomerName)
}
