package core

import "time"

// Updatable is anything driven once per frame. CanUpdate is asked at the
// start of each pass; Update receives the time since the previous pass.
type Updatable interface {
	CanUpdate() bool
	Update(dt time.Duration)
}
