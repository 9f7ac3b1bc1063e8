package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestChangeTrackerReportsTransitions(t *testing.T) {
	var tracker ChangeTracker[string]

	assert.True(t, tracker.Update("normal"))
	assert.Equal(t, "normal", tracker.Value)

	assert.False(t, tracker.Update("normal"))

	assert.True(t, tracker.Update("stopping"))
	assert.Equal(t, "normal", tracker.LastValue)
	assert.Equal(t, "stopping", tracker.Value)
}

func TestChangeTrackerUpdatedTime(t *testing.T) {
	var tracker ChangeTracker[int]

	before := time.Now()
	tracker.Update(1)
	assert.False(t, tracker.UpdatedTime.Before(before))

	stamped := tracker.UpdatedTime
	tracker.Update(1)
	assert.Equal(t, stamped, tracker.UpdatedTime)
}

func TestLoopTrackerMeanInterval(t *testing.T) {
	var tracker LoopTracker
	tracker.Init(4)

	for i := 0; i < 3; i++ {
		time.Sleep(time.Millisecond)
		tracker.Update()
	}

	assert.True(t, tracker.Time.After(tracker.LastTime))
	assert.Greater(t, tracker.MeanInterval(), time.Duration(0))
}

func TestLoopTrackerZeroValue(t *testing.T) {
	var tracker LoopTracker

	assert.Equal(t, time.Duration(0), tracker.MeanInterval())

	// Updates before Init keep the clock but record no intervals.
	tracker.Update()
	tracker.Update()
	tracker.Update()

	assert.False(t, tracker.Time.IsZero())
	assert.Equal(t, time.Duration(0), tracker.MeanInterval())
}
