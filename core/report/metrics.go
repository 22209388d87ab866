// Package report computes the derived metrics of the record store.
// Everything here is recomputed from a record.Snapshot on every call; nothing is cached or persisted.
package report

import (
	"math"
	"time"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
)

// Fee statuses
const (
	FeePaid    = "Paid"
	FeePartial = "Partial"
	FeePending = "Pending"
	FeeUnknown = "Unknown"
)

type (
	OverallStats struct {
		TotalStudents         int     `json:"totalStudents"`
		AverageAttendance     int     `json:"averageAttendance"`
		AverageHomework       int     `json:"averageHomeworkCompletion"`
		TotalFeesCollected    float64 `json:"totalFeesCollected"`
		TotalAttendance       int     `json:"totalAttendanceRecords"`
		TotalHomework         int     `json:"homeworkAssigned"`
		TotalHomeworkComplete int     `json:"homeworkCompleted"`
	}

	MonthlyStats struct {
		Month             string  `json:"month"` // eg: January 2024
		AttendanceRecords int     `json:"attendanceRecords"`
		PresentDays       int     `json:"presentDays"`
		FeesCollected     float64 `json:"feesCollected"`
		HomeworkAssigned  int     `json:"homeworkAssigned"`
		HomeworkCompleted int     `json:"homeworkCompleted"`
	}
)

func percent(n, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(n) / float64(total) * 100))
}

// AttendanceRate is the rounded percentage of the student's attendance entries that are Present; 0 without entries.
func AttendanceRate(snap record.Snapshot, studentID string) int {
	var total, present int
	for _, e := range snap.Attendance {
		if e.StudentID != studentID {
			continue
		}
		total++
		if e.IsPresent() {
			present++
		}
	}
	return percent(present, total)
}

// HomeworkCompletion is the rounded percentage of the student's homework entries that are completed; 0 without entries.
func HomeworkCompletion(snap record.Snapshot, studentID string) int {
	var total, completed int
	for _, e := range snap.Homework {
		if e.StudentID != studentID {
			continue
		}
		total++
		if e.Completed {
			completed++
		}
	}
	return percent(completed, total)
}

// MonthPaid sums the student's fees dated in the calendar month of `now`.
func MonthPaid(snap record.Snapshot, studentID string, now time.Time) float64 {
	var paid float64
	for _, f := range snap.Fees {
		if f.StudentID == studentID && core.DateInMonth(f.Date, now) {
			paid += f.Amount
		}
	}
	return paid
}

// FeeStatusFor classifies what the student paid in the month of `now` against their monthly fee.
// The Paid check comes first, so a student with no monthly fee is always Paid.
func FeeStatusFor(snap record.Snapshot, studentID string, now time.Time) string {
	st, ok := snap.Student(studentID)
	if !ok {
		return FeeUnknown
	}
	paid := MonthPaid(snap, studentID, now)
	switch {
	case paid >= st.MonthlyFee:
		return FeePaid
	case paid > 0:
		return FeePartial
	default:
		return FeePending
	}
}

// TotalPaid sums every fee the student ever paid.
func TotalPaid(snap record.Snapshot, studentID string) float64 {
	var paid float64
	for _, f := range snap.Fees {
		if f.StudentID == studentID {
			paid += f.Amount
		}
	}
	return paid
}

// Overall aggregates the whole store. Averages are the mean of the per-student rates.
func Overall(snap record.Snapshot) OverallStats {
	stats := OverallStats{
		TotalStudents:   len(snap.Students),
		TotalAttendance: len(snap.Attendance),
		TotalHomework:   len(snap.Homework),
	}
	for _, f := range snap.Fees {
		stats.TotalFeesCollected += f.Amount
	}
	for _, h := range snap.Homework {
		if h.Completed {
			stats.TotalHomeworkComplete++
		}
	}

	if n := len(snap.Students); n > 0 {
		var attSum, hwSum int
		for _, st := range snap.Students {
			attSum += AttendanceRate(snap, st.ID)
			hwSum += HomeworkCompletion(snap, st.ID)
		}
		stats.AverageAttendance = int(math.Round(float64(attSum) / float64(n)))
		stats.AverageHomework = int(math.Round(float64(hwSum) / float64(n)))
	}
	return stats
}

// Monthly aggregates the calendar month of `now`.
// Attendance and fees are windowed on their own date, homework on its creation timestamp.
func Monthly(snap record.Snapshot, now time.Time) MonthlyStats {
	stats := MonthlyStats{Month: core.MonthLabel(now)}
	for _, a := range snap.Attendance {
		if !core.DateInMonth(a.Date, now) {
			continue
		}
		stats.AttendanceRecords++
		if a.IsPresent() {
			stats.PresentDays++
		}
	}
	for _, f := range snap.Fees {
		if core.DateInMonth(f.Date, now) {
			stats.FeesCollected += f.Amount
		}
	}
	for _, h := range snap.Homework {
		if h.CreatedAt.IsZero() || !core.SameMonth(h.CreatedAt, now) {
			continue
		}
		stats.HomeworkAssigned++
		if h.Completed {
			stats.HomeworkCompleted++
		}
	}
	return stats
}
