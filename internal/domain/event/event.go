// Package event defines the shape shared by every domain event so that
// use cases can hand a mixed batch to one publisher after commit.
package event

import "time"

type Event interface {
	// Name is the dotted event name, e.g. "reservation.created".
	Name() string
	AggregateID() string
	OccurredAt() time.Time
}

// Publisher receives events that belong to a committed transaction.
type Publisher interface {
	Publish(events ...Event)
}

// Publishers fans a batch out to several publishers in order.
type Publishers []Publisher

func (ps Publishers) Publish(events ...Event) {
	for _, p := range ps {
		p.Publish(events...)
	}
}
