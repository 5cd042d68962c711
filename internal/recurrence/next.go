package recurrence

import "time"

// Next computes the first occurrence of the rule strictly after now,
// interpreted in now's location. A candidate equal to now counts as already
// past, so asking at the exact occurrence instant yields the following
// period — the result is always usable for "what's coming up" displays.
//
// Next expects a rule that passed Validate; it never fails.
func (r Rule) Next(now time.Time) time.Time {
	switch r.Kind {
	case Weekly:
		return r.nextWeekly(now)
	case MonthlyByDay:
		return r.nextMonthlyByDay(now)
	case MonthlyByNthWeekday:
		return r.nextMonthlyByNthWeekday(now)
	case Yearly:
		return r.nextYearly(now)
	}
	return time.Time{}
}

func (r Rule) at(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, r.At.Hour, r.At.Minute, 0, 0, loc)
}

func (r Rule) nextWeekly(now time.Time) time.Time {
	delta := (int(r.Weekday) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, delta)
	candidate := r.at(day.Year(), day.Month(), day.Day(), now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

func (r Rule) nextMonthlyByDay(now time.Time) time.Time {
	candidate := r.at(now.Year(), now.Month(), r.Day, now.Location())
	if !candidate.After(now) {
		// Day is capped at 28, so the increment never skips a month.
		candidate = r.at(now.Year(), now.Month()+1, r.Day, now.Location())
	}
	return candidate
}

func (r Rule) nextMonthlyByNthWeekday(now time.Time) time.Time {
	candidate := r.nthWeekdayOf(now.Year(), now.Month(), now.Location())
	if !candidate.After(now) {
		candidate = r.nthWeekdayOf(now.Year(), now.Month()+1, now.Location())
	}
	return candidate
}

// nthWeekdayOf resolves e.g. "2nd Wednesday" within the given month.
// Nth is restricted to 1..4, so the result always lands inside the month.
func (r Rule) nthWeekdayOf(year int, month time.Month, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(r.Weekday) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (r.Nth-1)*7
	return r.at(first.Year(), first.Month(), day, loc)
}

func (r Rule) nextYearly(now time.Time) time.Time {
	candidate := r.at(now.Year(), r.Month, r.Day, now.Location())
	if !candidate.After(now) {
		candidate = r.at(now.Year()+1, r.Month, r.Day, now.Location())
	}
	return candidate
}
