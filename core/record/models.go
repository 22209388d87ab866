package record

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Attendance statuses
const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
)

// Homework checklist selections
const (
	HomeworkDone    = "done"
	HomeworkNotDone = "not-done"
)

var (
	ErrStudentNotFound   = errors.New("student not found")
	ErrEntryNotFound     = errors.New("entry not found")
	ErrMalformedDocument = errors.New("malformed document")

	AttendanceStatuses = []string{StatusPresent, StatusAbsent}
	HomeworkStatuses   = []string{HomeworkDone, HomeworkNotDone}
)

// Student field names follow the historical storage format, so older exports import as-is.
type Student struct {
	ID            string    `json:"id"`
	Name          string    `json:"nameEn"`
	NameUrdu      string    `json:"nameUrdu"`
	NameArabic    string    `json:"nameArabic"`
	Age           int       `json:"age"`
	Class         string    `json:"class"`
	Subject       string    `json:"subject"`
	ParentContact string    `json:"parentContact"`
	MonthlyFee    float64   `json:"monthlyFee"`
	JoiningDate   string    `json:"joiningDate"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt"`
}

// Matches does a case-insensitive substring match on any displayed field.
// An empty term matches every Student.
func (s Student) Matches(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, fld := range []string{s.Name, s.NameUrdu, s.NameArabic, s.Class, s.Subject, s.ParentContact} {
		if strings.Contains(strings.ToLower(fld), term) {
			return true
		}
	}
	return false
}

type AttendanceEntry struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e AttendanceEntry) IsPresent() bool { return e.Status == StatusPresent }

type HomeworkEntry struct {
	ID        string    `json:"id"`
	StudentID string    `json:"studentId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

type FeeEntry struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"studentId"`
	Amount      float64   `json:"amount"`
	PaymentMode string    `json:"paymentMode"` // cash, bank, other...
	Date        string    `json:"date"`        // YYYY-MM-DD
	CreatedAt   time.Time `json:"createdAt"`
}

// Snapshot is a copy of the four containers at a point in time.
type Snapshot struct {
	Students   []Student
	Attendance []AttendanceEntry
	Homework   []HomeworkEntry
	Fees       []FeeEntry
}

// Student looks up a Student by ID.
func (snap Snapshot) Student(id string) (Student, bool) {
	for _, s := range snap.Students {
		if s.ID == id {
			return s, true
		}
	}
	return Student{}, false
}

func (snap Snapshot) AttendanceOf(studentID string) []AttendanceEntry {
	entries := make([]AttendanceEntry, 0)
	for _, e := range snap.Attendance {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries
}

func (snap Snapshot) HomeworkOf(studentID string) []HomeworkEntry {
	entries := make([]HomeworkEntry, 0)
	for _, e := range snap.Homework {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries
}

func (snap Snapshot) FeesOf(studentID string) []FeeEntry {
	entries := make([]FeeEntry, 0)
	for _, e := range snap.Fees {
		if e.StudentID == studentID {
			entries = append(entries, e)
		}
	}
	return entries
}
