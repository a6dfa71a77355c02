package ddnscfg

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// spanUnits maps systemd calendar span suffixes to durations. The set
// mirrors what systemd timers accept for OnUnitActiveSec values.
var spanUnits = map[string]time.Duration{
	"s": time.Second, "sec": time.Second, "second": time.Second, "seconds": time.Second,
	"m": time.Minute, "min": time.Minute, "minute": time.Minute, "minutes": time.Minute,
	"h": time.Hour, "hr": time.Hour, "hour": time.Hour, "hours": time.Hour,
	"d": 24 * time.Hour, "day": 24 * time.Hour, "days": 24 * time.Hour,
	"w": 7 * 24 * time.Hour, "week": 7 * 24 * time.Hour, "weeks": 7 * 24 * time.Hour,
}

// ParseRunInterval parses a systemd-style time span like "5min", "90s",
// "1h30min" or a bare number of seconds. The run itself never sleeps on
// this value; it is validated here because the scheduler consuming it
// fails much later and much less legibly.
func ParseRunInterval(s string) (time.Duration, error) {
	compact := strings.ReplaceAll(strings.TrimSpace(s), " ", "")
	if compact == "" {
		return 0, fmt.Errorf("empty interval")
	}

	// A bare number means seconds.
	if n, err := strconv.Atoi(compact); err == nil {
		if n <= 0 {
			return 0, fmt.Errorf("interval %q must be positive", s)
		}
		return time.Duration(n) * time.Second, nil
	}

	var total time.Duration
	rest := compact
	for rest != "" {
		i := 0
		for i < len(rest) && unicode.IsDigit(rune(rest[i])) {
			i++
		}
		if i == 0 {
			return 0, fmt.Errorf("invalid interval %q", s)
		}
		n, err := strconv.Atoi(rest[:i])
		if err != nil {
			return 0, fmt.Errorf("invalid interval %q: %w", s, err)
		}

		j := i
		for j < len(rest) && unicode.IsLetter(rune(rest[j])) {
			j++
		}
		unit, ok := spanUnits[strings.ToLower(rest[i:j])]
		if !ok {
			return 0, fmt.Errorf("invalid interval %q: unknown unit %q", s, rest[i:j])
		}
		total += time.Duration(n) * unit
		rest = rest[j:]
	}
	if total <= 0 {
		return 0, fmt.Errorf("interval %q must be positive", s)
	}
	return total, nil
}
