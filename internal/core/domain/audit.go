package domain

import "time"

// ModerationEvent records a moderator or admin changing content they do not own.
type ModerationEvent struct {
	ActorID    int64
	ActorRole  Role
	Action     Action
	Resource   ResourceKind
	ResourceID int64
	OwnerID    int64
	At         time.Time
}
