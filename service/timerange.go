package service

import (
	"time"

	"betledger/models"
)

// StartOfDay returns the local-midnight instant of ts's calendar date in loc
func StartOfDay(ts time.Time, loc *time.Location) time.Time {
	local := ts.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// MonthStart returns the first local-midnight instant of ts's calendar month.
// The unit-size cutoff uses this: everything placed strictly before it
// belongs to "previous months".
func MonthStart(ts time.Time, loc *time.Location) time.Time {
	local := ts.In(loc)
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
}

// ResolveRange turns a preset (or custom start/end dates) into the single
// DateRange contract the aggregator consumes: Start is the local midnight of
// the first included date, End is the exclusive local midnight of the day
// after the last included date.
func ResolveRange(preset models.RangePreset, start, end time.Time, now time.Time, loc *time.Location) (models.DateRange, error) {
	today := StartOfDay(now, loc)
	tomorrow := today.AddDate(0, 0, 1)

	switch preset {
	case models.RangePresetLast7:
		return models.DateRange{Start: today.AddDate(0, 0, -6), End: tomorrow}, nil

	case models.RangePresetLast30:
		return models.DateRange{Start: today.AddDate(0, 0, -29), End: tomorrow}, nil

	case models.RangePresetMTD:
		return models.DateRange{Start: MonthStart(now, loc), End: tomorrow}, nil

	case models.RangePresetPrevMonth:
		monthStart := MonthStart(now, loc)
		return models.DateRange{Start: monthStart.AddDate(0, -1, 0), End: monthStart}, nil

	case models.RangePresetAllTime, "":
		return models.DateRange{}, nil

	case models.RangePresetCustom:
		if start.IsZero() || end.IsZero() {
			return models.DateRange{}, &models.ValidationError{Field: "range", Reason: "custom range requires start and end dates"}
		}
		rangeStart := StartOfDay(start, loc)
		rangeEnd := StartOfDay(end, loc).AddDate(0, 0, 1)
		if rangeEnd.Before(rangeStart) {
			return models.DateRange{}, &models.ValidationError{Field: "range", Reason: "end date precedes start date"}
		}
		return models.DateRange{Start: rangeStart, End: rangeEnd}, nil
	}

	return models.DateRange{}, &models.ValidationError{Field: "range", Reason: "unknown range preset"}
}
