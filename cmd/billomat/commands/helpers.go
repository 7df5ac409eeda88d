package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/araddon/dateparse"

	"github.com/fivetwenty-io/billomat/internal/constants"
)

// parseID parses a positive entity id argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, arg)
	}

	return id, nil
}

// parseDate accepts any common date notation ("2026-03-01", "03/01/2026",
// "1 March 2026", ...). An empty value is the zero time.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	parsed, err := dateparse.ParseIn(value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %w", constants.ErrInvalidDate, value, err)
	}

	return parsed, nil
}

func yesNo(value *bool) string {
	if value == nil {
		return ""
	}

	if *value {
		return "yes"
	}

	return "no"
}
