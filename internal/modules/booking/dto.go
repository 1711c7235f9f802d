package booking

import (
	"time"

	"meetingroom/internal/domain/reservation"
)

// CreateReservationInput is also the request body of POST /reservations.
type CreateReservationInput struct {
	RoomID    string    `json:"room_id" validate:"required,uuid"`
	StartTime time.Time `json:"start_time" validate:"required"`
	EndTime   time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	Purpose   *string   `json:"purpose" validate:"omitempty,max=500"`
	// UserID lets an administrator book for someone else.
	UserID string `json:"user_id" validate:"omitempty,uuid"`
}

type CancelRequest struct {
	Reason *string `json:"reason" validate:"omitempty,max=500"`
}

type CancellationRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type ReservationResponse struct {
	ID                string             `json:"id"`
	RoomID            string             `json:"room_id"`
	UserID            string             `json:"user_id"`
	StartTime         time.Time          `json:"start_time"`
	EndTime           time.Time          `json:"end_time"`
	Status            reservation.Status `json:"status"`
	StatusLabel       string             `json:"status_label"`
	TotalPrice        int64              `json:"total_price"`
	Currency          string             `json:"currency"`
	FormattedPrice    string             `json:"formatted_price"`
	Purpose           *string            `json:"purpose,omitempty"`
	CancelReason      *string            `json:"cancel_reason,omitempty"`
	CancelRequestedAt *time.Time         `json:"cancel_requested_at,omitempty"`
	CanCancelNow      bool               `json:"can_cancel_immediately"`
	CreatedAt         time.Time          `json:"created_at"`
}

func toResponse(r *reservation.Reservation, now time.Time) ReservationResponse {
	return ReservationResponse{
		ID:                r.ID().String(),
		RoomID:            r.RoomID().String(),
		UserID:            r.UserID().String(),
		StartTime:         r.TimeSlot().Start(),
		EndTime:           r.TimeSlot().End(),
		Status:            r.Status(),
		StatusLabel:       r.Status().Label(),
		TotalPrice:        r.TotalPrice().Amount(),
		Currency:          r.TotalPrice().Currency(),
		FormattedPrice:    r.TotalPrice().Format(),
		Purpose:           r.Purpose(),
		CancelReason:      r.CancelReason(),
		CancelRequestedAt: r.CancelRequestedAt(),
		CanCancelNow:      r.Status().IsActive() && r.CanCancelImmediately(now),
		CreatedAt:         r.CreatedAt(),
	}
}

func toResponses(rs []*reservation.Reservation, now time.Time) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, toResponse(r, now))
	}
	return out
}
