package core

import (
	"time"

	"atiempo.app/atiempo/utils"
)

// Clock supplies the current instant. The scan processor stamps records
// with it so tests can pin time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return utils.MadridNow()
}

// SystemClock ticks in the Madrid time zone, matching the badge terminals.
func SystemClock() Clock {
	return systemClock{}
}
