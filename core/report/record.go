package report

import (
	"regexp"
	"sort"
	"time"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

type (
	// StudentCard is a Student as listed, with its derived metrics.
	StudentCard struct {
		record.Student
		AttendanceRate     int    `json:"attendanceRate"`
		HomeworkCompletion int    `json:"homeworkCompletion"`
		FeeStatus          string `json:"feeStatus"`
	}

	RecordStatistics struct {
		AttendanceRate     int     `json:"attendanceRate"`
		HomeworkCompletion int     `json:"homeworkCompletion"`
		TotalFeesPaid      float64 `json:"totalFeesPaid"`
		PresentDays        int     `json:"presentDays"`
		CompletedHomework  int     `json:"completedHomework"`
	}

	// StudentRecord is the complete record of one Student, newest entries first.
	StudentRecord struct {
		Student    record.Student           `json:"student"`
		Attendance []record.AttendanceEntry `json:"attendance"`
		Homework   []record.HomeworkEntry   `json:"homework"`
		Fees       []record.FeeEntry        `json:"fees"`
		Statistics RecordStatistics         `json:"statistics"`
		ExportDate time.Time                `json:"exportDate"`
	}

	AttendanceCheck struct {
		Student record.Student          `json:"student"`
		Entry   *record.AttendanceEntry `json:"entry"`
	}

	HomeworkCheck struct {
		Student record.Student        `json:"student"`
		Entry   *record.HomeworkEntry `json:"entry"`
	}
)

// Card computes the StudentCard of st.
func Card(snap record.Snapshot, st record.Student, now time.Time) StudentCard {
	return StudentCard{
		Student:            st,
		AttendanceRate:     AttendanceRate(snap, st.ID),
		HomeworkCompletion: HomeworkCompletion(snap, st.ID),
		FeeStatus:          FeeStatusFor(snap, st.ID, now),
	}
}

// BuildStudentRecord returns false if the Student does not exist.
func BuildStudentRecord(snap record.Snapshot, studentID string, now time.Time) (StudentRecord, bool) {
	st, ok := snap.Student(studentID)
	if !ok {
		return StudentRecord{}, false
	}

	rec := StudentRecord{
		Student:    st,
		Attendance: snap.AttendanceOf(studentID),
		Homework:   snap.HomeworkOf(studentID),
		Fees:       snap.FeesOf(studentID),
		Statistics: RecordStatistics{
			AttendanceRate:     AttendanceRate(snap, studentID),
			HomeworkCompletion: HomeworkCompletion(snap, studentID),
			TotalFeesPaid:      TotalPaid(snap, studentID),
		},
		ExportDate: now.UTC(),
	}
	for _, a := range rec.Attendance {
		if a.IsPresent() {
			rec.Statistics.PresentDays++
		}
	}
	for _, h := range rec.Homework {
		if h.Completed {
			rec.Statistics.CompletedHomework++
		}
	}

	SortAttendance(rec.Attendance)
	SortHomework(rec.Homework)
	SortFees(rec.Fees)
	return rec, true
}

// StudentRecordFilename returns eg: "Ali_Khan-record-2024-01-10.json".
func StudentRecordFilename(st record.Student, now time.Time) string {
	return whitespaceRegex.ReplaceAllString(st.Name, "_") + "-record-" + core.FormatDate(now) + ".json"
}

// AttendanceChecklist pairs every Student with their entry for date, if any.
func AttendanceChecklist(snap record.Snapshot, date string) []AttendanceCheck {
	checks := make([]AttendanceCheck, 0, len(snap.Students))
	for _, st := range snap.Students {
		check := AttendanceCheck{Student: st}
		for _, e := range snap.Attendance {
			if e.StudentID == st.ID && e.Date == date {
				e := e
				check.Entry = &e
				break
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// HomeworkChecklist pairs every Student with their entry for date, if any.
func HomeworkChecklist(snap record.Snapshot, date string) []HomeworkCheck {
	checks := make([]HomeworkCheck, 0, len(snap.Students))
	for _, st := range snap.Students {
		check := HomeworkCheck{Student: st}
		for _, e := range snap.Homework {
			if e.StudentID == st.ID && e.Date == date {
				e := e
				check.Entry = &e
				break
			}
		}
		checks = append(checks, check)
	}
	return checks
}

// Sorting: newest date first, stable for equal dates.
// YYYY-MM-DD dates sort lexically.

func SortAttendance(entries []record.AttendanceEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
}

func SortHomework(entries []record.HomeworkEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
}

func SortFees(entries []record.FeeEntry) {
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
}
