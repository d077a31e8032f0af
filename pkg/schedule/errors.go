package schedule

import "errors"

var (
	ErrInvalidSchedule = errors.New("invalid schedule expression")
	ErrNotConfigured   = errors.New("schedule loop requires a schedule and a function")
)
