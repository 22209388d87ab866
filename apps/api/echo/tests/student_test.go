package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tuition/core/record"
	"github.com/trezcool/tuition/core/report"
	"github.com/trezcool/tuition/tests"
)

func Test_home(t *testing.T) {
	app, _, _ := setup(t)
	req, rec := newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Tuition API!", rec.Body.String())
}

func Test_studentApi_create(t *testing.T) {
	app, store, gw := setup(t)

	var card report.StudentCard
	rec := do(t, app, http.MethodPost, "/v1/students", []byte(`{
		"nameEn": " Ali Khan ", "nameUrdu": "علی خان", "age": 12, "class": "7",
		"subject": "Maths", "parentContact": "0300-1234567", "monthlyFee": 100, "joiningDate": "2024-01-01"
	}`), &card)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.NotEmpty(t, card.ID)
	assert.Equal(t, "Ali Khan", card.Name)
	assert.Equal(t, "علی خان", card.NameUrdu)
	assert.Equal(t, 100.0, card.MonthlyFee)
	assert.False(t, card.CreatedAt.IsZero())
	assert.Equal(t, 0, card.AttendanceRate)
	assert.Equal(t, 0, card.HomeworkCompletion)
	assert.Equal(t, report.FeePending, card.FeeStatus)

	st, ok := store.Student(card.ID)
	require.True(t, ok)
	assert.Equal(t, card.Student, st)
	assert.Equal(t, 1, gw.Saves())

	t.Run("invalid", func(t *testing.T) {
		var errs map[string]string
		rec := do(t, app, http.MethodPost, "/v1/students", []byte(`{"nameEn": "  ", "monthlyFee": -10, "joiningDate": "Jan 1st"}`), &errs)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "this field is required", errs["nameEn"])
		assert.Equal(t, "joiningDate must be a date formatted as YYYY-MM-DD", errs["joiningDate"])
		assert.Contains(t, errs, "age")
		assert.Contains(t, errs, "monthlyFee")
		assert.Len(t, store.Students(), 1)
	})
}

func Test_studentApi_query(t *testing.T) {
	app, store, _ := setup(t)
	ali := testutil.CreateStudent(t, store, "Ali Khan", 100)
	sara := testutil.CreateStudent(t, store, "Sara", 50)
	testutil.MarkAttendance(t, store, ali.ID, "2024-01-10", record.StatusPresent)

	var cards []report.StudentCard
	rec := do(t, app, http.MethodGet, "/v1/students", nil, &cards)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, cards, 2)
	assert.Equal(t, ali.ID, cards[0].ID)
	assert.Equal(t, 100, cards[0].AttendanceRate)
	assert.Equal(t, sara.ID, cards[1].ID)

	do(t, app, http.MethodGet, "/v1/students?search=KHAN", nil, &cards)
	require.Len(t, cards, 1)
	assert.Equal(t, ali.ID, cards[0].ID)

	runHTTPTests(t, app, []httpTest{
		{name: "search (unknown)", path: "/v1/students?search=nobody", wantData: []byte(`[]`)},
		{name: "trailing slash", path: "/v1/students/?search=nobody", wantData: []byte(`[]`)},
	})
}

func Test_studentApi_retrieveUpdate(t *testing.T) {
	app, store, _ := setup(t)
	ali := testutil.CreateStudent(t, store, "Ali", 100)

	notFound := marchallObj(t, httpErr{Error: record.ErrStudentNotFound.Error()})
	runHTTPTests(t, app, []httpTest{
		{name: "retrieve unknown", path: "/v1/students/ghost", wantCode: http.StatusNotFound, wantData: notFound},
		{
			name: "update unknown", method: http.MethodPut, path: "/v1/students/ghost",
			body: []byte(`{"nameEn": "Ghost", "age": 10}`), wantCode: http.StatusNotFound, wantData: notFound,
		},
	})

	var card report.StudentCard
	rec := do(t, app, http.MethodGet, "/v1/students/"+ali.ID, nil, &card)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ali, card.Student)

	rec = do(t, app, http.MethodPut, "/v1/students/"+ali.ID, []byte(`{"nameEn": "Ali Raza", "age": 13, "monthlyFee": 120}`), &card)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, ali.ID, card.ID)
	assert.Equal(t, "Ali Raza", card.Name)
	assert.Equal(t, 120.0, card.MonthlyFee)
	assert.Equal(t, ali.CreatedAt, card.CreatedAt)
	assert.Len(t, store.Students(), 1)
}

func Test_studentApi_destroy(t *testing.T) {
	app, store, _ := setup(t)
	ali := testutil.CreateStudent(t, store, "Ali", 100)
	sara := testutil.CreateStudent(t, store, "Sara", 100)
	for _, id := range []string{ali.ID, sara.ID} {
		testutil.MarkAttendance(t, store, id, "2024-01-10", record.StatusPresent)
		testutil.MarkHomework(t, store, id, "2024-01-10", true)
		testutil.RecordFee(t, store, id, 100, "2024-01-10")
	}

	rec := do(t, app, http.MethodDelete, "/v1/students/"+ali.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	snap := store.Snapshot()
	assert.Equal(t, []record.Student{sara}, snap.Students)
	for _, e := range snap.Attendance {
		assert.NotEqual(t, ali.ID, e.StudentID)
	}
	for _, e := range snap.Homework {
		assert.NotEqual(t, ali.ID, e.StudentID)
	}
	for _, e := range snap.Fees {
		assert.NotEqual(t, ali.ID, e.StudentID)
	}
	assert.Len(t, snap.Attendance, 1)
	assert.Len(t, snap.Homework, 1)
	assert.Len(t, snap.Fees, 1)

	// deleting twice is fine
	rec = do(t, app, http.MethodDelete, "/v1/students/"+ali.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_studentApi_exportRecord(t *testing.T) {
	app, store, _ := setup(t)
	ali := testutil.CreateStudent(t, store, "Ali Khan", 100)
	testutil.MarkAttendance(t, store, ali.ID, "2024-01-10", record.StatusPresent)
	testutil.MarkAttendance(t, store, ali.ID, "2024-01-11", record.StatusAbsent)
	testutil.MarkHomework(t, store, ali.ID, "2024-01-10", true)
	testutil.RecordFee(t, store, ali.ID, 60, "2024-01-10")
	testutil.RecordFee(t, store, ali.ID, 40, "2023-12-10")

	var rec report.StudentRecord
	resp := do(t, app, http.MethodGet, "/v1/students/"+ali.ID+"/record", nil, &rec)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Regexp(t, `^attachment; filename="Ali_Khan-record-\d{4}-\d{2}-\d{2}\.json"$`, resp.Header().Get("Content-Disposition"))

	assert.Equal(t, ali, rec.Student)
	assert.Len(t, rec.Attendance, 2)
	assert.Equal(t, "2024-01-11", rec.Attendance[0].Date)
	assert.Equal(t, report.RecordStatistics{
		AttendanceRate:     50,
		HomeworkCompletion: 100,
		TotalFeesPaid:      100,
		PresentDays:        1,
		CompletedHomework:  1,
	}, rec.Statistics)
	assert.False(t, rec.ExportDate.IsZero())

	runHTTPTests(t, app, []httpTest{
		{
			name: "unknown student", path: "/v1/students/ghost/record", wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: record.ErrStudentNotFound.Error()}),
		},
	})
}
