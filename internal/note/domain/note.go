package domain

import "time"

type ID string

// Note is owned by exactly one user; every store operation on it is scoped
// to that owner.
type Note struct {
	ID        ID
	Title     string
	Content   string
	Tags      []string
	IsPinned  bool
	OwnerID   string
	CreatedAt time.Time
}
