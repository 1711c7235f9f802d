package reservation

import "meetingroom/internal/pkg/apperror"

var (
	// ErrSlotAlreadyBooked is returned both by the availability check and by
	// storage-level conflict detection, so callers see one message for both.
	ErrSlotAlreadyBooked = apperror.Domain("the selected time slot is already booked")

	ErrRoomInactive         = apperror.Domain("this room is currently not available for booking")
	ErrUserHasActiveBooking = apperror.Domain("you already have an active reservation, only one is allowed at a time")

	// ErrStaleReservation means the row changed after it was loaded.
	ErrStaleReservation = apperror.Domain("the reservation was changed by another request, reload and try again")
)
