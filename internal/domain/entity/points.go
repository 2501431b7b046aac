package entity

import "time"

// PointsEntry is a single row in the household points table. Entries are
// written by the main application; this service only observes before/after
// snapshots delivered by the change feed.
type PointsEntry struct {
	ID        string
	UserID    string
	Points    int
	Reason    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
