package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"meetingroom/internal/pkg/apperror"
)

func TestTransitionTable(t *testing.T) {
	allowed := map[Status]map[Status]bool{
		StatusPending:         {StatusConfirmed: true, StatusCancelled: true},
		StatusConfirmed:       {StatusCancelRequested: true, StatusCancelled: true, StatusCompleted: true, StatusNoShow: true},
		StatusCancelRequested: {StatusConfirmed: true, StatusCancelled: true},
	}

	for _, from := range AllStatuses() {
		for _, to := range AllStatuses() {
			got, err := Transition(from, to)
			if allowed[from][to] {
				assert.NoError(t, err, "%s -> %s", from, to)
				assert.Equal(t, to, got)
			} else {
				assert.ErrorIs(t, err, apperror.ErrDomain, "%s -> %s", from, to)
				assert.Equal(t, from, got)
			}
		}
	}
}

func TestStatusClassification(t *testing.T) {
	for _, s := range AllStatuses() {
		assert.NotEqual(t, s.IsActive(), s.IsFinal(), s)
		assert.NotEmpty(t, s.Label())
	}
	assert.ElementsMatch(t, []Status{StatusPending, StatusConfirmed, StatusCancelRequested}, ActiveStatuses())

	_, err := ParseStatus("BOGUS")
	assert.ErrorIs(t, err, apperror.ErrValidation)
	s, err := ParseStatus("NO_SHOW")
	assert.NoError(t, err)
	assert.Equal(t, StatusNoShow, s)
}
