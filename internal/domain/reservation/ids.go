package reservation

import (
	"github.com/google/uuid"

	"meetingroom/internal/pkg/apperror"
)

type ID uuid.UUID

// UserID identifies the booking user. Users live outside this service.
type UserID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, apperror.Validation("invalid reservation id: %q", s)
	}
	return ID(u), nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UserID{}, apperror.Validation("invalid user id: %q", s)
	}
	return UserID(u), nil
}

func (id ID) String() string     { return uuid.UUID(id).String() }
func (id UserID) String() string { return uuid.UUID(id).String() }

func (id ID) MarshalText() ([]byte, error)     { return []byte(id.String()), nil }
func (id UserID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
