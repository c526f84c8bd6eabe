package attendance

import (
	"log/slog"
	"math"
	"time"

	"github.com/kantorhq/hrms-backend-go/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// DayView is the per-day status derived from the record set. For days with
// no stored record it is synthesized: ABSENT for elapsed working days,
// NOT_CHECKED_IN for today and the future.
type DayView struct {
	Date       time.Time
	Status     attendance.Status
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours float64
}

// Rollup holds period counters over a record set.
type Rollup struct {
	WorkedDays int
	LateDays   int
	OffDays    int
	TotalHours float64
}

// PeriodPredicate selects which record dates belong to a rollup period.
type PeriodPredicate func(date time.Time) bool

// SameMonth matches dates within the given calendar month.
func SameMonth(year int, month time.Month) PeriodPredicate {
	return func(date time.Time) bool {
		return date.Year() == year && date.Month() == month
	}
}

// LastNDays matches dates within the n days up to and including now's day.
func LastNDays(now time.Time, n int) PeriodPredicate {
	end := truncateDay(now)
	start := end.AddDate(0, 0, -(n - 1))
	return func(date time.Time) bool {
		d := truncateDay(date)
		return !d.Before(start) && !d.After(end)
	}
}

// DailyStatus looks up the record for date. Absent records on past days are
// reported as ABSENT with zero hours; today and future days without a record
// get the NOT_CHECKED_IN placeholder so the current day never inflates
// absence counts before it has elapsed.
func DailyStatus(records []attendance.Attendance, date, now time.Time) DayView {
	day := truncateDay(date)
	for _, rec := range records {
		if rec.Date.IsZero() {
			continue
		}
		if truncateDay(rec.Date).Equal(day) {
			return DayView{
				Date:       day,
				Status:     rec.Status,
				CheckIn:    rec.CheckIn,
				CheckOut:   rec.CheckOut,
				TotalHours: coerceHours(rec.TotalHours),
			}
		}
	}

	if day.Before(truncateDay(now)) {
		return DayView{Date: day, Status: attendance.StatusAbsent}
	}
	return DayView{Date: day, Status: attendance.StatusNotCheckedIn}
}

// Summarize rolls up the records matching pred. Records with a zero date or
// an unknown status are skipped and logged; a single bad record must not
// blank out the whole period. NaN or negative stored hours are coerced to 0.
// The result depends only on the input slice, so repeated calls over an
// unchanged set yield identical rollups.
func Summarize(records []attendance.Attendance, pred PeriodPredicate) Rollup {
	var rollup Rollup
	hours := decimal.Zero

	for _, rec := range records {
		if rec.Date.IsZero() {
			slog.Warn("skipping attendance record with invalid date",
				"attendance_id", rec.ID,
				"employee_id", rec.EmployeeID,
			)
			continue
		}
		if !rec.Status.Valid() {
			slog.Warn("skipping attendance record with unknown status",
				"attendance_id", rec.ID,
				"status", string(rec.Status),
			)
			continue
		}
		if !pred(rec.Date) {
			continue
		}

		switch rec.Status {
		case attendance.StatusPresent:
			rollup.WorkedDays++
		case attendance.StatusLate:
			rollup.WorkedDays++
			rollup.LateDays++
		case attendance.StatusAbsent, attendance.StatusLeave, attendance.StatusHoliday:
			rollup.OffDays++
		}

		hours = hours.Add(decimal.NewFromFloat(coerceHours(rec.TotalHours)))
	}

	rollup.TotalHours = hours.Round(2).InexactFloat64()
	return rollup
}

// WorkHours computes the duration between check-in and check-out in hours,
// rounded to two decimals. Negative durations are clock skew and rejected
// by the caller before anything is stored.
func WorkHours(checkIn, checkOut time.Time) float64 {
	hours := decimal.NewFromFloat(checkOut.Sub(checkIn).Hours())
	return hours.Round(2).InexactFloat64()
}

func coerceHours(h float64) float64 {
	if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
		return 0
	}
	return h
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
