package record

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/tuition/core"
	logsvc "github.com/trezcool/tuition/services/logger"
)

func seedStore(t *testing.T, store *Store) {
	ctx := context.Background()
	ali, err := store.UpsertStudent(ctx, Student{Name: "Ali Khan", NameUrdu: "علی خان", Age: 12, MonthlyFee: 100, JoiningDate: "2023-09-01"})
	require.NoError(t, err)
	sara, err := store.UpsertStudent(ctx, Student{Name: "Sara", Age: 9, MonthlyFee: 80.5})
	require.NoError(t, err)

	_, err = store.MarkAttendance(ctx, "2024-01-10", []AttendanceMark{
		{StudentID: ali.ID, Status: StatusPresent},
		{StudentID: sara.ID, Status: StatusAbsent, Note: "sick"},
	})
	require.NoError(t, err)
	_, err = store.MarkHomework(ctx, "2024-01-10", []HomeworkMark{{StudentID: ali.ID, Completed: true}, {StudentID: sara.ID}})
	require.NoError(t, err)
	_, err = store.RecordFee(ctx, ali.ID, 60, "cash", "2024-01-05")
	require.NoError(t, err)
	_, err = store.RecordFee(ctx, ali.ID, 40.25, "bank", "2024-01-12")
	require.NoError(t, err)
}

func TestExportImport_roundTrip(t *testing.T) {
	src, _ := newTestStore(t)
	seedStore(t, src)

	doc := src.Export()
	assert.Equal(t, testNow, doc.ExportDate)

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	parsed, err := ParseDocument(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, doc, parsed)

	gw := newMemGateway()
	dst, err := Open(context.Background(), gw, logsvc.NewDiscardLogger())
	require.NoError(t, err)
	_, _ = dst.UpsertStudent(context.Background(), Student{Name: "to be replaced"})

	require.NoError(t, dst.Import(context.Background(), parsed))

	want, got := src.Snapshot(), dst.Snapshot()
	assert.ElementsMatch(t, want.Students, got.Students)
	assert.ElementsMatch(t, want.Attendance, got.Attendance)
	assert.ElementsMatch(t, want.Homework, got.Homework)
	assert.ElementsMatch(t, want.Fees, got.Fees)
	for _, key := range AllKeys {
		assert.NotEmpty(t, gw.blobs[key], key)
	}
}

func TestParseDocument(t *testing.T) {
	t.Run("missing containers are empty", func(t *testing.T) {
		doc, err := ParseDocument(strings.NewReader(`{"students":[{"id":"s1","nameEn":"Ali"}],"fees":null}`))
		require.NoError(t, err)
		assert.Equal(t, []Student{{ID: "s1", Name: "Ali"}}, doc.Students)
		assert.NotNil(t, doc.Attendance)
		assert.Empty(t, doc.Attendance)
		assert.NotNil(t, doc.Fees)
		assert.Empty(t, doc.Fees)
		assert.NotNil(t, doc.Homework)
		assert.True(t, doc.ExportDate.IsZero())
	})

	t.Run("legacy homework is migrated", func(t *testing.T) {
		doc, err := ParseDocument(strings.NewReader(`{"homework":[
			{"id":"h1","studentId":"s1","type":"Essay","description":"...","dueDate":"2024-01-10","completed":true,"createdAt":"2024-01-02T00:00:00Z"}
		],"exportDate":"2024-01-15T10:00:00Z"}`))
		require.NoError(t, err)
		assert.Equal(t, []HomeworkEntry{{
			ID:        "h1",
			StudentID: "s1",
			Date:      "2024-01-10",
			Completed: true,
			CreatedAt: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
		}}, doc.Homework)
		assert.Equal(t, testNow, doc.ExportDate)
	})

	malformed := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "not an object", data: `[1, 2]`},
		{name: "broken json", data: `{"students": [`},
		{name: "container is not a list", data: `{"students": "Ali"}`},
		{name: "bad entry", data: `{"fees": [{"amount": "lots"}]}`},
		{name: "bad export date", data: `{"exportDate": "yesterday"}`},
	}
	for _, tt := range malformed {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument(strings.NewReader(tt.data))
			require.Error(t, err)
			assert.True(t, core.IsValidationError(err))
			assert.True(t, errors.Is(err, ErrMalformedDocument))
		})
	}
}

func TestExportFilename(t *testing.T) {
	assert.Equal(t, "tuition-data-2024-01-15.json", ExportFilename(testNow))
}
