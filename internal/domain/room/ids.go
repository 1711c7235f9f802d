package room

import (
	"github.com/google/uuid"

	"meetingroom/internal/pkg/apperror"
)

type ID uuid.UUID

type GroupID uuid.UUID

func NewID() ID { return ID(uuid.New()) }

func NewGroupID() GroupID { return GroupID(uuid.New()) }

func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, apperror.Validation("invalid room id: %q", s)
	}
	return ID(u), nil
}

func ParseGroupID(s string) (GroupID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GroupID{}, apperror.Validation("invalid room group id: %q", s)
	}
	return GroupID(u), nil
}

func (id ID) String() string      { return uuid.UUID(id).String() }
func (id ID) IsZero() bool        { return uuid.UUID(id) == uuid.Nil }
func (id GroupID) String() string { return uuid.UUID(id).String() }
func (id GroupID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }

func (id ID) MarshalText() ([]byte, error)      { return []byte(id.String()), nil }
func (id GroupID) MarshalText() ([]byte, error) { return []byte(id.String()), nil }
