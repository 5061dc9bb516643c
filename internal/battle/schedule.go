package battle

import "time"

// DefaultOpponentDelay is the pause before a scheduled opponent move.
const DefaultOpponentDelay = time.Second

// Timer is a pending delayed callback.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}
