package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	clockPattern    = regexp.MustCompile(`^\s*(\d{1,2}):(\d{2})\s*([AaPp][Mm])?\s*$`)
	durationPattern = regexp.MustCompile(`^\s*(\d+)\s*(min|mins|minute|minutes|hour|hours)\s*$`)
)

// ToMinutes parses "HH:MM" (24h) or "HH:MM AM|PM" (12h, case-insensitive) into
// minutes since midnight.
func ToMinutes(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hours, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if mins > 59 {
		return 0, fmt.Errorf("invalid minutes in %q", s)
	}

	if suffix := strings.ToUpper(m[3]); suffix != "" {
		if hours < 1 || hours > 12 {
			return 0, fmt.Errorf("invalid 12-hour clock value %q", s)
		}
		hours %= 12
		if suffix == "PM" {
			hours += 12
		}
	} else if hours > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	return hours*60 + mins, nil
}

// FromMinutes formats minutes since midnight as zero-padded "HH:MM". Values past
// midnight are not wrapped.
func FromMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// ParseDuration normalises a loosely typed duration into minutes.
// Numbers pass through, strings like "90 min" or "2 hours" are converted, other
// non-empty strings yield defaultValue and nil or "" yield 0.
func ParseDuration(value interface{}, defaultValue int) int {
	switch v := value.(type) {
	case nil:
		return 0
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float32:
		return int(math.Round(float64(v)))
	case float64:
		return int(math.Round(v))
	case string:
		if strings.TrimSpace(v) == "" {
			return 0
		}
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
		m := durationPattern.FindStringSubmatch(strings.ToLower(v))
		if m == nil {
			return defaultValue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return defaultValue
		}
		if strings.HasPrefix(m[2], "hour") {
			return n * 60
		}
		return n
	default:
		return defaultValue
	}
}
