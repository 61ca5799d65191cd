package cli

import (
	"fmt"
	"time"

	"dayboard/internal/daykey"
)

// dateFromArgs resolves an optional positional YYYY-MM-DD argument, falling
// back to today.
func dateFromArgs(args []string) (daykey.Date, error) {
	if len(args) == 0 || args[0] == "" {
		return daykey.Today(), nil
	}
	d, err := daykey.ParseKey(args[0])
	if err != nil {
		return daykey.Date{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", args[0])
	}
	return d, nil
}

// monthFromArgs resolves an optional positional YYYY-MM argument, falling
// back to the current month.
func monthFromArgs(args []string) (int, time.Month, error) {
	if len(args) == 0 || args[0] == "" {
		today := daykey.Today()
		return today.Year, today.Month, nil
	}
	t, err := time.Parse("2006-01", args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: use YYYY-MM", args[0])
	}
	return t.Year(), t.Month(), nil
}
