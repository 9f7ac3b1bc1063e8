package filter

// StopLineDetector turns a noisy distance-to-stop-line signal into a stable
// at-line event. A run of consecutive readings at or below the trigger
// distance is required before the detector fires, and once fired it keeps
// reporting true for up to hold further calls so a few dropped frames do not
// clear a real detection. A proximate reading while the hold is running
// restores the full hold budget.
type StopLineDetector struct {
	consecutive int
	hold        int
	trigger     int
	run         int
	held        int
}

func (d *StopLineDetector) Init(consecutive int, hold int, trigger int) {
	d.consecutive = consecutive
	d.hold = hold
	d.trigger = trigger
	d.run = 0
	d.held = 0
}

func (d *StopLineDetector) AtLine(distance int) bool {
	proximate := distance <= d.trigger
	if proximate {
		d.run += 1
	} else {
		d.run = 0
	}
	if d.run >= d.consecutive {
		d.held = d.hold
		return true
	}
	if d.held > 0 {
		if proximate {
			d.held = d.hold
		} else {
			d.held -= 1
		}
		return true
	}
	return false
}
