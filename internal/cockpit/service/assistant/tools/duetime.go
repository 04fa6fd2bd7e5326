package tools

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var relativeDuePattern = regexp.MustCompile(`^in\s+(\d+)\s+(hour|day|week)s?$`)

// ParseDueTime turns a colloquial due phrase into a concrete time. Named
// days ("tomorrow", "friday", "next week") and dates without a time of day
// land at 09:00 local; "in N hours/days/weeks" keeps the current time of
// day. Anything unparseable, including the empty string, falls back to
// tomorrow at 09:00 so a reminder is never lost to a phrasing the parser
// does not know.
func ParseDueTime(phrase string, now time.Time) time.Time {
	p := strings.ToLower(strings.TrimSpace(phrase))

	switch p {
	case "", "tomorrow":
		return atNine(now.AddDate(0, 0, 1))
	case "today":
		return atNine(now)
	case "next week":
		return atNine(nextWeekday(now, time.Monday))
	}

	if m := relativeDuePattern.FindStringSubmatch(p); m != nil {
		n, _ := strconv.Atoi(m[1])
		switch m[2] {
		case "hour":
			return now.Add(time.Duration(n) * time.Hour)
		case "day":
			return now.AddDate(0, 0, n)
		case "week":
			return now.AddDate(0, 0, 7*n)
		}
	}

	weekdays := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	if wd, ok := weekdays[strings.TrimPrefix(p, "next ")]; ok {
		return atNine(nextWeekday(now, wd))
	}

	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, p, now.Location()); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 {
				t = atNine(t)
			}
			return t
		}
	}

	// Month-day phrases like "september 15" land on the next occurrence.
	for _, layout := range []string{"January 2", "Jan 2"} {
		if t, err := time.ParseInLocation(layout, p, now.Location()); err == nil {
			due := time.Date(now.Year(), t.Month(), t.Day(), 9, 0, 0, 0, now.Location())
			if due.Before(now) {
				due = due.AddDate(1, 0, 0)
			}
			return due
		}
	}

	return atNine(now.AddDate(0, 0, 1))
}

func atNine(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 9, 0, 0, 0, t.Location())
}

// nextWeekday returns the next occurrence of wd strictly after now's day.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return now.AddDate(0, 0, days)
}
