package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/tests"
)

var now = time.Date(2024, time.January, 20, 9, 30, 0, 0, time.UTC)

func TestAttendanceRate(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ali := testutil.CreateStudent(t, store, "Ali", 100)
	sara := testutil.CreateStudent(t, store, "Sara", 100)
	newbie := testutil.CreateStudent(t, store, "Newbie", 100)

	testutil.MarkAttendance(t, store, ali.ID, "2024-01-01", record.StatusPresent)
	testutil.MarkAttendance(t, store, ali.ID, "2024-01-02", record.StatusPresent)
	testutil.MarkAttendance(t, store, ali.ID, "2024-01-03", record.StatusAbsent)
	testutil.MarkAttendance(t, store, sara.ID, "2024-01-01", record.StatusAbsent)

	snap := store.Snapshot()
	tests := []struct {
		name      string
		studentID string
		want      int
	}{
		{name: "2 of 3 rounds to 67", studentID: ali.ID, want: 67},
		{name: "never present", studentID: sara.ID, want: 0},
		{name: "no entries", studentID: newbie.ID, want: 0},
		{name: "unknown student", studentID: "ghost", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AttendanceRate(snap, tt.studentID))
		})
	}
}

func TestHomeworkCompletion(t *testing.T) {
	store, _ := testutil.NewStore(t)
	ali := testutil.CreateStudent(t, store, "Ali", 100)
	sara := testutil.CreateStudent(t, store, "Sara", 100)

	testutil.MarkHomework(t, store, ali.ID, "2024-01-01", true)
	testutil.MarkHomework(t, store, ali.ID, "2024-01-02", false)
	testutil.MarkHomework(t, store, ali.ID, "2024-01-03", false)

	snap := store.Snapshot()
	assert.Equal(t, 33, HomeworkCompletion(snap, ali.ID))
	assert.Equal(t, 0, HomeworkCompletion(snap, sara.ID))

	// re-marking replaces, it does not add
	testutil.MarkHomework(t, store, ali.ID, "2024-01-02", true)
	assert.Equal(t, 67, HomeworkCompletion(store.Snapshot(), ali.ID))
}

func TestFeeStatusFor(t *testing.T) {
	tests := []struct {
		name       string
		monthlyFee float64
		fees       map[string]float64 // date: amount
		want       string
	}{
		{name: "nothing paid", monthlyFee: 100, want: FeePending},
		{name: "partial", monthlyFee: 100, fees: map[string]float64{"2024-01-05": 40}, want: FeePartial},
		{name: "paid in parts", monthlyFee: 100, fees: map[string]float64{"2024-01-05": 40, "2024-01-19": 60}, want: FeePaid},
		{name: "overpaid", monthlyFee: 100, fees: map[string]float64{"2024-01-31": 150}, want: FeePaid},
		{name: "only last month", monthlyFee: 100, fees: map[string]float64{"2023-12-31": 100}, want: FeePending},
		{name: "same month last year", monthlyFee: 100, fees: map[string]float64{"2023-01-10": 100}, want: FeePending},
		{name: "free student", monthlyFee: 0, want: FeePaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := testutil.NewStore(t)
			st := testutil.CreateStudent(t, store, "Ali", tt.monthlyFee)
			for date, amount := range tt.fees {
				testutil.RecordFee(t, store, st.ID, amount, date)
			}
			assert.Equal(t, tt.want, FeeStatusFor(store.Snapshot(), st.ID, now))
		})
	}

	t.Run("unknown student", func(t *testing.T) {
		store, _ := testutil.NewStore(t)
		assert.Equal(t, FeeUnknown, FeeStatusFor(store.Snapshot(), "ghost", now))
	})
}

func TestOverall(t *testing.T) {
	t.Run("no students", func(t *testing.T) {
		store, _ := testutil.NewStore(t)
		assert.Equal(t, OverallStats{}, Overall(store.Snapshot()))
	})

	store, _ := testutil.NewStore(t)
	ali := testutil.CreateStudent(t, store, "Ali", 100)
	sara := testutil.CreateStudent(t, store, "Sara", 100)

	testutil.MarkAttendance(t, store, ali.ID, "2024-01-10", record.StatusPresent)
	testutil.MarkAttendance(t, store, sara.ID, "2024-01-10", record.StatusAbsent)
	testutil.MarkHomework(t, store, ali.ID, "2024-01-10", true)
	testutil.MarkHomework(t, store, ali.ID, "2024-01-11", true)
	testutil.MarkHomework(t, store, sara.ID, "2024-01-10", false)
	testutil.RecordFee(t, store, ali.ID, 100, "2023-12-01")
	testutil.RecordFee(t, store, sara.ID, 50.5, "2024-01-10")

	assert.Equal(t, OverallStats{
		TotalStudents:         2,
		AverageAttendance:     50,
		AverageHomework:       50,
		TotalFeesCollected:    150.5,
		TotalAttendance:       2,
		TotalHomework:         3,
		TotalHomeworkComplete: 2,
	}, Overall(store.Snapshot()))
}

func TestMonthly(t *testing.T) {
	thisMonth := now.Add(-24 * time.Hour)
	lastMonth := now.AddDate(0, -1, 0)

	snap := record.Snapshot{
		Attendance: []record.AttendanceEntry{
			{StudentID: "s1", Date: "2024-01-02", Status: record.StatusPresent},
			{StudentID: "s1", Date: "2024-01-03", Status: record.StatusAbsent},
			{StudentID: "s2", Date: "2024-01-03", Status: record.StatusPresent},
			{StudentID: "s1", Date: "2023-12-30", Status: record.StatusPresent},
		},
		Fees: []record.FeeEntry{
			{StudentID: "s1", Amount: 60, Date: "2024-01-05"},
			{StudentID: "s2", Amount: 40.5, Date: "2024-01-31"},
			{StudentID: "s1", Amount: 100, Date: "2023-12-05"},
		},
		// windowed on creation, not on their own date
		Homework: []record.HomeworkEntry{
			{StudentID: "s1", Date: "2023-12-30", Completed: true, CreatedAt: thisMonth},
			{StudentID: "s2", Date: "2024-01-10", Completed: false, CreatedAt: thisMonth},
			{StudentID: "s1", Date: "2024-01-02", Completed: true, CreatedAt: lastMonth},
			{StudentID: "s2", Date: "2024-01-03", Completed: true},
		},
	}

	assert.Equal(t, MonthlyStats{
		Month:             "January 2024",
		AttendanceRecords: 3,
		PresentDays:       2,
		FeesCollected:     100.5,
		HomeworkAssigned:  2,
		HomeworkCompleted: 1,
	}, Monthly(snap, now))
}

func TestMonthly_location(t *testing.T) {
	// 2024-02-01 01:00 in Karachi is still January in UTC
	pkt := time.FixedZone("PKT", 5*60*60)
	nowPKT := time.Date(2024, time.February, 1, 1, 0, 0, 0, pkt)

	snap := record.Snapshot{
		Fees:     []record.FeeEntry{{Amount: 10, Date: "2024-02-01"}},
		Homework: []record.HomeworkEntry{{CreatedAt: time.Date(2024, time.January, 31, 20, 30, 0, 0, time.UTC)}},
	}
	stats := Monthly(snap, nowPKT)
	assert.Equal(t, "February 2024", stats.Month)
	assert.Equal(t, 10.0, stats.FeesCollected)
	assert.Equal(t, 1, stats.HomeworkAssigned)
}
