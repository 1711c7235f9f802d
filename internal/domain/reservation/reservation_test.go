package reservation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/apperror"
)

func price(t *testing.T, amount int64) room.Money {
	t.Helper()
	m, err := room.NewMoney(amount, "KRW")
	require.NoError(t, err)
	return m
}

func newConfirmed(t *testing.T, s TimeSlot, now time.Time) *Reservation {
	t.Helper()
	r, _, err := New(room.NewID(), UserID(uuid.New()), s, price(t, 5000), nil, false, now)
	require.NoError(t, err)
	return r
}

func TestNewReservation(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	roomID := room.NewID()
	user := UserID(uuid.New())
	purpose := "sprint planning"

	r, ev, err := New(roomID, user, s, price(t, 5000), &purpose, false, monday(8, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, r.Status())
	assert.True(t, r.TotalPrice().Equal(price(t, 10000)))
	assert.Equal(t, r.ID(), ev.ReservationID)
	assert.Equal(t, roomID.String(), ev.RoomID)
	assert.Equal(t, "reservation.created", ev.Name())
	assert.Equal(t, &purpose, r.Purpose())
}

func TestNewReservationPriceIsPerSlot(t *testing.T) {
	for n := 1; n <= 8; n++ {
		s := slot(t, monday(9, 0), monday(9, 0).Add(time.Duration(n)*SlotDuration))
		r, _, err := New(room.NewID(), UserID(uuid.New()), s, price(t, 3300), nil, true, monday(8, 0))
		require.NoError(t, err)
		assert.Equal(t, int64(3300*n), r.TotalPrice().Amount())
	}
}

func TestNewReservationDurationCap(t *testing.T) {
	twoHours := slot(t, monday(9, 0), monday(11, 0))
	longer := slot(t, monday(9, 0), monday(11, 30))

	_, _, err := New(room.NewID(), UserID(uuid.New()), twoHours, price(t, 1), nil, false, monday(8, 0))
	assert.NoError(t, err)

	_, _, err = New(room.NewID(), UserID(uuid.New()), longer, price(t, 1), nil, false, monday(8, 0))
	assert.ErrorIs(t, err, apperror.ErrValidation)

	_, _, err = New(room.NewID(), UserID(uuid.New()), longer, price(t, 1), nil, true, monday(8, 0))
	assert.NoError(t, err)
}

func TestCancelImmediatelyBoundary(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	exactly := s.Start().Add(-48 * time.Hour)

	r := newConfirmed(t, s, exactly.Add(-time.Hour))
	assert.False(t, r.CanCancelImmediately(exactly))
	assert.True(t, r.CanCancelImmediately(exactly.Add(-time.Second)))

	_, err := r.CancelImmediately(nil, exactly)
	assert.ErrorIs(t, err, apperror.ErrDomain)
	assert.Equal(t, StatusConfirmed, r.Status())

	reason := "plans changed"
	ev, err := r.CancelImmediately(&reason, exactly.Add(-time.Second))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, r.Status())
	assert.Equal(t, &reason, ev.Reason)
}

func TestRequestCancel(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	created := s.Start().Add(-72 * time.Hour)

	t.Run("far ahead uses immediate path", func(t *testing.T) {
		r := newConfirmed(t, s, created)
		_, err := r.RequestCancel("sick", s.Start().Add(-49*time.Hour))
		assert.ErrorIs(t, err, apperror.ErrDomain)
	})

	t.Run("reason is required", func(t *testing.T) {
		r := newConfirmed(t, s, created)
		_, err := r.RequestCancel("  ", s.Start().Add(-time.Hour))
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("after start is rejected", func(t *testing.T) {
		r := newConfirmed(t, s, created)
		_, err := r.RequestCancel("sick", s.Start())
		assert.ErrorIs(t, err, apperror.ErrDomain)
	})

	t.Run("at the 48h boundary", func(t *testing.T) {
		r := newConfirmed(t, s, created)
		now := s.Start().Add(-48 * time.Hour)
		ev, err := r.RequestCancel("sick", now)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelRequested, r.Status())
		assert.Equal(t, "sick", *r.CancelReason())
		assert.Equal(t, now, *r.CancelRequestedAt())
		assert.Equal(t, "sick", ev.Reason)

		_, err = r.RequestCancel("again", now)
		assert.ErrorIs(t, err, apperror.ErrDomain)
	})
}

func TestRejectAndApproveCancelRequest(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	now := s.Start().Add(-time.Hour)

	r := newConfirmed(t, s, now.Add(-time.Hour))
	_, err := r.RejectCancelRequest(now)
	assert.ErrorIs(t, err, apperror.ErrDomain)

	_, err = r.RequestCancel("sick", now)
	require.NoError(t, err)
	_, err = r.RejectCancelRequest(now)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, r.Status())
	assert.Nil(t, r.CancelReason())
	assert.Nil(t, r.CancelRequestedAt())

	_, err = r.RequestCancel("really sick", now)
	require.NoError(t, err)
	ev, err := r.Cancel(nil, now)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, r.Status())
	assert.Equal(t, "really sick", *ev.Reason)

	_, err = r.Cancel(nil, now)
	assert.ErrorIs(t, err, apperror.ErrDomain)
}

func TestTerminalTransitions(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	now := monday(12, 0)

	r := newConfirmed(t, s, monday(8, 0))
	_, err := r.Complete(now)
	require.NoError(t, err)
	_, err = r.MarkNoShow(now)
	assert.ErrorIs(t, err, apperror.ErrDomain)
	_, err = r.Confirm(now)
	assert.ErrorIs(t, err, apperror.ErrDomain)

	r = newConfirmed(t, s, monday(8, 0))
	ev, err := r.MarkNoShow(now)
	require.NoError(t, err)
	assert.Equal(t, "reservation.no_show", ev.Name())
	assert.Equal(t, now, r.UpdatedAt())
}

func TestOverlapsOnlyWhenActive(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	r := newConfirmed(t, s, monday(8, 0))

	assert.True(t, r.Overlaps(slot(t, monday(10, 30), monday(11, 30))))
	assert.False(t, r.Overlaps(slot(t, monday(11, 0), monday(11, 30))))

	_, err := r.Cancel(nil, monday(8, 0))
	require.NoError(t, err)
	assert.False(t, r.Overlaps(s))
}

func TestPendingConfirm(t *testing.T) {
	s := slot(t, monday(10, 0), monday(11, 0))
	snap := newConfirmed(t, s, monday(8, 0)).Snapshot()
	snap.Status = StatusPending

	r := Restore(snap)
	ev, err := r.Confirm(monday(9, 0))
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, r.Status())
	assert.Equal(t, r.ID(), ev.ReservationID)
}
