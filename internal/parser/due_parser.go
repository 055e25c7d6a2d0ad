package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseDueDate parses the due date formats accepted on the command line
// Supported formats:
// - yyyy-mm-dd (e.g., "2026-03-15")
// - dd/mm/yyyy (e.g., "15/03/2026")
// - X days / X weeks (e.g., "3 days", "2 weeks")
// - "today", "tomorrow"
func ParseDueDate(input string) (*time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}

	if due, err := parseAbsoluteDate(input); err == nil {
		return due, nil
	}
	if due, err := parseRelativeDate(input); err == nil {
		return due, nil
	}

	return nil, fmt.Errorf("invalid date format. Use: yyyy-mm-dd, dd/mm/yyyy, X days, or X weeks")
}

var (
	isoDateRegex   = regexp.MustCompile(`^(\d{4})-(\d{1,2})-(\d{1,2})$`)
	slashDateRegex = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
)

func parseAbsoluteDate(input string) (*time.Time, error) {
	var day, month, year int

	if matches := isoDateRegex.FindStringSubmatch(input); len(matches) == 4 {
		year, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		day, _ = strconv.Atoi(matches[3])
	} else if matches := slashDateRegex.FindStringSubmatch(input); len(matches) == 4 {
		day, _ = strconv.Atoi(matches[1])
		month, _ = strconv.Atoi(matches[2])
		year, _ = strconv.Atoi(matches[3])
	} else {
		return nil, fmt.Errorf("invalid date format")
	}

	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12")
	}
	if day < 1 || day > 31 {
		return nil, fmt.Errorf("day must be between 1 and 31")
	}

	due := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)

	// Reject dates normalized away by time.Date (31/02 and friends)
	if due.Day() != day || due.Month() != time.Month(month) || due.Year() != year {
		return nil, fmt.Errorf("invalid date")
	}

	return &due, nil
}

var relativeRegex = regexp.MustCompile(`^(\d+)\s+(day|days|week|weeks)$`)

func parseRelativeDate(input string) (*time.Time, error) {
	input = strings.ToLower(input)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch input {
	case "today":
		return &today, nil
	case "tomorrow":
		due := today.AddDate(0, 0, 1)
		return &due, nil
	}

	matches := relativeRegex.FindStringSubmatch(input)
	if len(matches) != 3 {
		return nil, fmt.Errorf("invalid relative date format")
	}

	amount, err := strconv.Atoi(matches[1])
	if err != nil {
		return nil, fmt.Errorf("invalid number")
	}

	switch matches[2] {
	case "day", "days":
		if amount < 1 || amount > 365 {
			return nil, fmt.Errorf("days must be between 1 and 365")
		}
		due := today.AddDate(0, 0, amount)
		return &due, nil
	case "week", "weeks":
		if amount < 1 || amount > 52 {
			return nil, fmt.Errorf("weeks must be between 1 and 52")
		}
		due := today.AddDate(0, 0, amount*7)
		return &due, nil
	default:
		return nil, fmt.Errorf("unsupported time unit")
	}
}

// FormatDueDate formats a due date for display
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dueDay := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, due.Location())
	daysDiff := int(dueDay.Sub(today).Hours() / 24)

	dateStr := due.Format("Jan 02, 2006")

	switch {
	case daysDiff < 0:
		return fmt.Sprintf("OVERDUE (%s)", dateStr)
	case daysDiff == 0:
		return fmt.Sprintf("due today (%s)", dateStr)
	case daysDiff == 1:
		return fmt.Sprintf("due tomorrow (%s)", dateStr)
	case daysDiff <= 7:
		return fmt.Sprintf("due %s (in %d days)", dateStr, daysDiff)
	default:
		return fmt.Sprintf("due %s", dateStr)
	}
}
