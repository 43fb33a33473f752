package storage

import "time"

// Persisted session keys.
const (
	KeyToken        = "token"
	KeyUser         = "user"
	KeyLastTaskDate = "lastTaskDate"
)

// SessionKeys lists every key cleared on logout.
var SessionKeys = []string{KeyToken, KeyUser, KeyLastTaskDate}

type Pair struct {
	Key   string
	Value string
}

type Confirmation struct {
	UserID      string
	Day         string
	AttemptedAt time.Time
	Confirmed   bool
}
