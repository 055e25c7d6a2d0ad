package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseEstimate parses a time estimate into whole minutes.
// Accepts plain minutes ("90") or Go-style durations ("1h30m", "45m").
// Zero/empty means no estimate; negative values are rejected.
func ParseEstimate(input string) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, nil
	}

	if minutes, err := strconv.Atoi(input); err == nil {
		if minutes < 0 {
			return 0, fmt.Errorf("estimate must be a positive number of minutes")
		}
		return minutes, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid estimate. Use minutes (\"90\") or a duration (\"1h30m\")")
	}
	if d < 0 {
		return 0, fmt.Errorf("estimate must be a positive duration")
	}
	if d%time.Minute != 0 {
		return 0, fmt.Errorf("estimate must be whole minutes")
	}

	return int(d / time.Minute), nil
}
