package analytics

import (
	"time"

	domainerror "github.com/chrisemayers/pos-backoffice/internal/domain/error"
)

// Named period tokens accepted by NamedRange.
const (
	PeriodToday      = "today"
	PeriodThisWeek   = "this_week"
	PeriodLastWeek   = "last_week"
	PeriodThisMonth  = "this_month"
	PeriodLastMonth  = "last_month"
	PeriodLast7Days  = "last_7_days"
	PeriodLast30Days = "last_30_days"
)

// The calculators below are pure functions of an explicit now; the caller is
// expected to pass now already shifted into the store's time zone. Every
// returned range is half-open, fully bounded, and satisfies Start < End
// regardless of when now falls, including midnight and month-boundary
// instants.

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Today spans local midnight to the next local midnight.
func Today(now time.Time) Range {
	start := startOfDay(now)
	return Range{Start: start, End: start.AddDate(0, 0, 1)}
}

// ThisWeek spans the Monday-anchored calendar week containing now. On a
// Sunday the anchor is the previous Monday, six days back, not the upcoming
// one.
func ThisWeek(now time.Time) Range {
	offset := 1 - int(now.Weekday())
	if now.Weekday() == time.Sunday {
		offset = -6
	}
	monday := startOfDay(now).AddDate(0, 0, offset)
	return Range{Start: monday, End: monday.AddDate(0, 0, 7)}
}

// LastWeek ends exactly where ThisWeek starts, with no gap and no overlap,
// and spans the seven days before that.
func LastWeek(now time.Time) Range {
	thisWeek := ThisWeek(now)
	return Range{Start: thisWeek.Start.AddDate(0, 0, -7), End: thisWeek.Start}
}

// ThisMonth spans first-of-month midnight to first-of-next-month midnight.
func ThisMonth(now time.Time) Range {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Range{Start: first, End: first.AddDate(0, 1, 0)}
}

// LastMonth spans the previous calendar month, ending where ThisMonth starts.
func LastMonth(now time.Time) Range {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return Range{Start: first.AddDate(0, -1, 0), End: first}
}

// LastNDays is the rolling window from now-days back to the end of today, so
// the partial current day is included and the span is days..days+1 depending
// on the time of day. This is deliberately distinct from the calendar-anchored
// week and month ranges.
func LastNDays(now time.Time, days int) Range {
	return Range{Start: now.AddDate(0, 0, -days), End: startOfDay(now).AddDate(0, 0, 1)}
}

// NamedRange resolves a period token to its range relative to now.
func NamedRange(period string, now time.Time) (Range, error) {
	switch period {
	case PeriodToday:
		return Today(now), nil
	case PeriodThisWeek:
		return ThisWeek(now), nil
	case PeriodLastWeek:
		return LastWeek(now), nil
	case PeriodThisMonth:
		return ThisMonth(now), nil
	case PeriodLastMonth:
		return LastMonth(now), nil
	case PeriodLast7Days:
		return LastNDays(now, 7), nil
	case PeriodLast30Days:
		return LastNDays(now, 30), nil
	default:
		return Range{}, domainerror.ErrInvalidPeriod
	}
}

// PreviousRange returns the window of the same length ending exactly where r
// starts. It is the generic "previous period" for ad-hoc ranges; calendar
// periods have exact twins (ThisWeek/LastWeek, ThisMonth/LastMonth) that
// callers should prefer.
func PreviousRange(r Range) Range {
	return Range{Start: r.Start.Add(-r.Duration()), End: r.Start}
}

// ComparisonRanges resolves a period token to the pair of ranges a
// period-over-period report compares. Calendar periods use their calendar
// twin (this_week against last_week, months against the preceding calendar
// month, which may differ in length); rolling windows shift back by their own
// duration.
func ComparisonRanges(period string, now time.Time) (current, previous Range, err error) {
	current, err = NamedRange(period, now)
	if err != nil {
		return Range{}, Range{}, err
	}

	switch period {
	case PeriodThisWeek:
		previous = LastWeek(now)
	case PeriodThisMonth:
		previous = LastMonth(now)
	case PeriodLastMonth:
		previous = Range{Start: current.Start.AddDate(0, -1, 0), End: current.Start}
	default:
		previous = PreviousRange(current)
	}
	return current, previous, nil
}
