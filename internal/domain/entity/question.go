package entity

import "time"

// Question is an archived question-of-the-day clue. The archive is
// insert-only; ID is the insertion order.
type Question struct {
	ID        int64
	Category  string
	Question  string
	Answer    string
	CreatedAt time.Time
}
