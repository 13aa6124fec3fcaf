package application

import (
	"time"

	"github.com/google/uuid"
)

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

// Timer is the handle of a one-shot deferred callback.
type Timer interface {
	Stop() bool
}

// Scheduler defers a callback; time.AfterFunc is the production implementation.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

type IDGen interface {
	NewID() string
}

type defaultIDGen struct{}

func (defaultIDGen) NewID() string { return uuid.NewString() }
