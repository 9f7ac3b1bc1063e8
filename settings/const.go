package settings

import (
	"time"
)

const (
	LOOP_DELAY        = 50 * time.Millisecond
	STATUS_PUSH_DELAY = 500 * time.Millisecond
)
