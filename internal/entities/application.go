package entities

import "time"

// NotifiedApplication is the ledger of candidatures already delivered to
// a recruiter chat, so polling never notifies the same one twice.
type NotifiedApplication struct {
	ID            int
	ChatID        int64
	ApplicationID string
	LastCheckedAt time.Time
	CreatedAt     time.Time
}
