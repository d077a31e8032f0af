package schedule

import (
	"fmt"
	"strings"
	"time"
)

// Parse reads a schedule expression:
//
//	@every 15m     fixed interval (any time.ParseDuration value, at least one second)
//	hourly         every hour on the hour
//	hourly :30     every hour at minute 30
//	daily 02:30    every day at 02:30
func Parse(expr string) (Schedule, error) {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(expr)))
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty expression", ErrInvalidSchedule)
	}

	switch fields[0] {
	case "@every":
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil || d < time.Second {
			return nil, fmt.Errorf("%w: bad interval %q", ErrInvalidSchedule, fields[1])
		}
		return EveryInterval(d), nil

	case "hourly", "@hourly":
		if len(fields) == 1 {
			return HourlyAt(0), nil
		}
		var minute int
		if len(fields) != 2 || !scanClock(strings.TrimPrefix(fields[1], ":"), "%d", &minute) || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
		}
		return HourlyAt(minute), nil

	case "daily", "@daily":
		if len(fields) == 1 {
			return DailyAt(0, 0), nil
		}
		var hour, minute int
		if len(fields) != 2 || !scanClock(fields[1], "%d:%d", &hour, &minute) ||
			hour < 0 || hour > 23 || minute < 0 || minute > 59 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
		}
		return DailyAt(hour, minute), nil
	}

	return nil, fmt.Errorf("%w: unknown form %q", ErrInvalidSchedule, expr)
}

func scanClock(s, format string, dst ...any) bool {
	n, err := fmt.Sscanf(s, format, dst...)
	return err == nil && n == len(dst)
}
