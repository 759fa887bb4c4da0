package engine

import "time"

// TimeManager turns search limits into a hard wall-clock deadline. A
// depth-only or infinite search never expires on time.
type TimeManager struct {
	unbounded bool
	start     time.Time
	deadline  time.Time
}

func NewTimeManager(limits Limits, start time.Time) *TimeManager {
	if limits.Infinite || limits.MoveTime <= 0 {
		return &TimeManager{unbounded: true, start: start}
	}
	return &TimeManager{
		start:    start,
		deadline: start.Add(limits.MoveTime),
	}
}

// Expired reports whether the deadline has passed.
func (tm *TimeManager) Expired() bool {
	return !tm.unbounded && !time.Now().Before(tm.deadline)
}

// NoTimeForNextIteration guesses whether another full iteration fits.
// Each depth costs more than everything before it, so when less budget
// remains than has been spent the next iteration would be wasted work.
func (tm *TimeManager) NoTimeForNextIteration(elapsed time.Duration) bool {
	if tm.unbounded {
		return false
	}
	remaining := time.Until(tm.deadline)
	return remaining < elapsed
}
