package utils

import (
	"time"
)

// ChangeTracker reports transitions of a value between loop iterations and
// remembers the value it changed away from.
type ChangeTracker[T comparable] struct {
	LastValue   T
	Value       T
	UpdatedTime time.Time
}

func (t *ChangeTracker[T]) Update(val T) (updated bool) {
	if t.Value != val {
		t.LastValue = t.Value
		t.UpdatedTime = time.Now()
		t.Value = val
		return true
	}
	return false
}

// LoopTracker measures the spacing of loop iterations with a windowed mean,
// for watching a control loop that should tick at a fixed rate. The window
// seeds itself from the first measured interval.
type LoopTracker struct {
	LastTime time.Time
	Time     time.Time

	diffs       []float64
	index       int
	initialized bool
}

func (u *LoopTracker) Init(windowLength int) {
	if windowLength < 1 {
		windowLength = 1
	}
	u.LastTime = time.Now()
	u.Time = time.Now()
	u.diffs = make([]float64, windowLength)
	u.index = 0
	u.initialized = false
}

func (u *LoopTracker) Update() {
	u.LastTime = u.Time
	u.Time = time.Now()
	if len(u.diffs) == 0 {
		return
	}
	diff := u.Time.Sub(u.LastTime).Seconds()
	if !u.initialized {
		for i := range u.diffs {
			u.diffs[i] = diff
		}
		u.initialized = true
		return
	}
	u.index += 1
	u.index %= len(u.diffs)
	u.diffs[u.index] = diff
}

// MeanInterval returns the average spacing of the tracked iterations.
func (u *LoopTracker) MeanInterval() time.Duration {
	if len(u.diffs) == 0 {
		return 0
	}
	total := 0.0
	for _, d := range u.diffs {
		total += d
	}
	return time.Duration(total / float64(len(u.diffs)) * float64(time.Second))
}
