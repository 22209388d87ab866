package testutil

import (
	"context"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
	logsvc "github.com/trezcool/tuition/services/logger"
	"github.com/trezcool/tuition/storage/inmem"
)

// NewStore returns an empty Store backed by an in-memory Gateway.
func NewStore(t *testing.T) (*record.Store, *inmem.Gateway) {
	t.Helper()
	gw := inmem.NewGateway()
	store, err := record.Open(context.Background(), gw, logsvc.NewDiscardLogger())
	if err != nil {
		t.Fatalf("record.Open() failed: %v", err)
	}
	return store, gw
}

func NewValidator() (*validator.Validate, ut.Translator) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	record.InitValidators(validate, translator)
	return validate, translator
}

func CreateStudent(t *testing.T, store *record.Store, name string, monthlyFee float64) record.Student {
	t.Helper()
	st, err := store.UpsertStudent(context.Background(), record.Student{
		Name:        name,
		Age:         12,
		Class:       "7",
		Subject:     "Maths",
		MonthlyFee:  monthlyFee,
		JoiningDate: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("createStudent() failed: %v", err)
	}
	return st
}

func MarkAttendance(t *testing.T, store *record.Store, studentID, date, status string) record.AttendanceEntry {
	t.Helper()
	e, err := store.UpsertAttendance(context.Background(), studentID, date, status, "")
	if err != nil {
		t.Fatalf("markAttendance() failed: %v", err)
	}
	return e
}

func MarkHomework(t *testing.T, store *record.Store, studentID, date string, completed bool) record.HomeworkEntry {
	t.Helper()
	e, err := store.UpsertHomework(context.Background(), studentID, date, completed)
	if err != nil {
		t.Fatalf("markHomework() failed: %v", err)
	}
	return e
}

func RecordFee(t *testing.T, store *record.Store, studentID string, amount float64, date string) record.FeeEntry {
	t.Helper()
	e, err := store.RecordFee(context.Background(), studentID, amount, "cash", date)
	if err != nil {
		t.Fatalf("recordFee() failed: %v", err)
	}
	return e
}
