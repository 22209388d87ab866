package report

import (
	"time"

	"github.com/trezcool/tuition/core"
	"github.com/trezcool/tuition/core/record"
)

var nowFunc = time.Now // mockable

// Service evaluates the metrics on the store's current contents, against the wall clock in loc.
type Service struct {
	store *record.Store
	loc   *time.Location
}

func NewService(store *record.Store, conf *core.Config) *Service {
	loc := conf.Location
	if loc == nil {
		loc = time.Local
	}
	return &Service{store: store, loc: loc}
}

// Now returns the current time in the Service's location.
func (svc *Service) Now() time.Time {
	return nowFunc().In(svc.loc)
}

func (svc *Service) AttendanceRate(studentID string) int {
	return AttendanceRate(svc.store.Snapshot(), studentID)
}

func (svc *Service) HomeworkCompletion(studentID string) int {
	return HomeworkCompletion(svc.store.Snapshot(), studentID)
}

func (svc *Service) FeeStatus(studentID string) string {
	return FeeStatusFor(svc.store.Snapshot(), studentID, svc.Now())
}

func (svc *Service) Overall() OverallStats {
	return Overall(svc.store.Snapshot())
}

func (svc *Service) Monthly() MonthlyStats {
	return Monthly(svc.store.Snapshot(), svc.Now())
}

// Cards lists the Students matching search along with their metrics.
func (svc *Service) Cards(search string) []StudentCard {
	snap := svc.store.Snapshot()
	now := svc.Now()
	cards := make([]StudentCard, 0, len(snap.Students))
	for _, st := range snap.Students {
		if st.Matches(search) {
			cards = append(cards, Card(snap, st, now))
		}
	}
	return cards
}

func (svc *Service) Card(studentID string) (StudentCard, error) {
	snap := svc.store.Snapshot()
	st, ok := snap.Student(studentID)
	if !ok {
		return StudentCard{}, record.ErrStudentNotFound
	}
	return Card(snap, st, svc.Now()), nil
}

func (svc *Service) StudentRecord(studentID string) (StudentRecord, error) {
	rec, ok := BuildStudentRecord(svc.store.Snapshot(), studentID, svc.Now())
	if !ok {
		return StudentRecord{}, record.ErrStudentNotFound
	}
	return rec, nil
}

func (svc *Service) AttendanceChecklist(date string) []AttendanceCheck {
	return AttendanceChecklist(svc.store.Snapshot(), date)
}

func (svc *Service) HomeworkChecklist(date string) []HomeworkCheck {
	return HomeworkChecklist(svc.store.Snapshot(), date)
}

// AttendanceOn lists attendance entries, newest first, optionally for a single date.
func (svc *Service) AttendanceOn(date string) []record.AttendanceEntry {
	entries := svc.store.Attendance()
	if date != "" {
		entries = filterBy(entries, func(e record.AttendanceEntry) bool { return e.Date == date })
	}
	SortAttendance(entries)
	return entries
}

// HomeworkOn lists homework entries, newest first, optionally for a single date.
func (svc *Service) HomeworkOn(date string) []record.HomeworkEntry {
	entries := svc.store.Homework()
	if date != "" {
		entries = filterBy(entries, func(e record.HomeworkEntry) bool { return e.Date == date })
	}
	SortHomework(entries)
	return entries
}

// FeesOf lists fees, newest first, optionally for a single Student.
func (svc *Service) FeesOf(studentID string) []record.FeeEntry {
	entries := svc.store.Fees()
	if studentID != "" {
		entries = filterBy(entries, func(e record.FeeEntry) bool { return e.StudentID == studentID })
	}
	SortFees(entries)
	return entries
}

func filterBy[T any](list []T, keep func(T) bool) []T {
	kept := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	return kept
}
