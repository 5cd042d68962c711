// Package recurrence evaluates the repeating-schedule rules used by the
// events catalog. A Rule is pure data; evaluating it never touches I/O and
// always produces the same instant for the same reference time.
package recurrence

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the rule variants.
type Kind int

const (
	Weekly Kind = iota + 1
	MonthlyByDay
	MonthlyByNthWeekday
	Yearly
)

// TimeOfDay is a wall-clock time in the site's civil timezone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("parse time of day %q: %w", s, err)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q out of range", s)
	}
	return t, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Rule describes one repeating schedule. Exactly the fields relevant to its
// Kind are meaningful; construct through the New* helpers (or YAML) so that
// range checks run up front and Next can stay total.
type Rule struct {
	Kind    Kind
	Weekday time.Weekday // Weekly, MonthlyByNthWeekday
	Day     int          // MonthlyByDay (1..28), Yearly (1..31)
	Nth     int          // MonthlyByNthWeekday (1..4)
	Month   time.Month   // Yearly
	At      TimeOfDay
}

// NewWeekly returns a rule firing every week on the given weekday.
func NewWeekly(weekday time.Weekday, at TimeOfDay) (Rule, error) {
	r := Rule{Kind: Weekly, Weekday: weekday, At: at}
	return r, r.Validate()
}

// NewMonthlyByDay returns a rule firing monthly on a fixed day of month.
// The day is capped at 28 so the rule exists in every month.
func NewMonthlyByDay(day int, at TimeOfDay) (Rule, error) {
	r := Rule{Kind: MonthlyByDay, Day: day, At: at}
	return r, r.Validate()
}

// NewMonthlyByNthWeekday returns a rule firing monthly on the nth (1..4)
// occurrence of a weekday. Nth is restricted to 1..4 because a fifth
// occurrence does not exist in every month.
func NewMonthlyByNthWeekday(nth int, weekday time.Weekday, at TimeOfDay) (Rule, error) {
	r := Rule{Kind: MonthlyByNthWeekday, Nth: nth, Weekday: weekday, At: at}
	return r, r.Validate()
}

// NewYearly returns a rule firing once a year on (month, day).
func NewYearly(month time.Month, day int, at TimeOfDay) (Rule, error) {
	r := Rule{Kind: Yearly, Month: month, Day: day, At: at}
	return r, r.Validate()
}

// maxDay holds the largest accepted day per month for yearly rules.
// February allows 29; on non-leap years time.Date normalizes Feb 29 to
// March 1, which keeps evaluation deterministic.
var maxDay = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Validate checks the field ranges for the rule's kind.
func (r Rule) Validate() error {
	if r.At.Hour < 0 || r.At.Hour > 23 || r.At.Minute < 0 || r.At.Minute > 59 {
		return fmt.Errorf("recurrence: time of day %02d:%02d out of range", r.At.Hour, r.At.Minute)
	}
	switch r.Kind {
	case Weekly:
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return fmt.Errorf("recurrence: weekday %d out of range", r.Weekday)
		}
	case MonthlyByDay:
		if r.Day < 1 || r.Day > 28 {
			return fmt.Errorf("recurrence: day of month %d out of range 1..28", r.Day)
		}
	case MonthlyByNthWeekday:
		if r.Nth < 1 || r.Nth > 4 {
			return fmt.Errorf("recurrence: nth %d out of range 1..4", r.Nth)
		}
		if r.Weekday < time.Sunday || r.Weekday > time.Saturday {
			return fmt.Errorf("recurrence: weekday %d out of range", r.Weekday)
		}
	case Yearly:
		if r.Month < time.January || r.Month > time.December {
			return fmt.Errorf("recurrence: month %d out of range", r.Month)
		}
		if r.Day < 1 || r.Day > maxDay[r.Month] {
			return fmt.Errorf("recurrence: day %d out of range for month %s", r.Day, r.Month)
		}
	default:
		return fmt.Errorf("recurrence: unknown rule kind %d", r.Kind)
	}
	return nil
}

// ruleYAML is the catalog representation of a rule, e.g.
//
//	recurrence: { every: week, weekday: sunday, at: "10:30" }
//	recurrence: { every: month, nth: 1, weekday: wednesday, at: "19:00" }
//	recurrence: { every: month, day: 15, at: "18:30" }
//	recurrence: { every: year, month: 12, day: 25, at: "09:00" }
type ruleYAML struct {
	Every   string `yaml:"every"`
	Weekday string `yaml:"weekday"`
	Day     int    `yaml:"day"`
	Nth     int    `yaml:"nth"`
	Month   int    `yaml:"month"`
	At      string `yaml:"at"`
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// UnmarshalYAML decodes and validates a rule from the events catalog.
func (r *Rule) UnmarshalYAML(value *yaml.Node) error {
	var raw ruleYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	at, err := ParseTimeOfDay(raw.At)
	if err != nil {
		return err
	}

	weekday, weekdayOK := weekdayNames[raw.Weekday]

	var rule Rule
	switch raw.Every {
	case "week":
		if !weekdayOK {
			return fmt.Errorf("recurrence: unknown weekday %q", raw.Weekday)
		}
		rule, err = NewWeekly(weekday, at)
	case "month":
		if raw.Nth > 0 || raw.Weekday != "" {
			if !weekdayOK {
				return fmt.Errorf("recurrence: unknown weekday %q", raw.Weekday)
			}
			rule, err = NewMonthlyByNthWeekday(raw.Nth, weekday, at)
		} else {
			rule, err = NewMonthlyByDay(raw.Day, at)
		}
	case "year":
		rule, err = NewYearly(time.Month(raw.Month), raw.Day, at)
	default:
		return fmt.Errorf("recurrence: unknown interval %q", raw.Every)
	}
	if err != nil {
		return err
	}

	*r = rule
	return nil
}
