package record

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
)

var (
	nowFunc   = time.Now       // mockable
	newIDFunc = uuid.NewString // mockable
)

// Store is the in-memory authoritative state of the four containers.
// Every mutation is written through to the Gateway before returning.
// A failed write is logged and returned, but the in-memory change stays committed.
type Store struct {
	mu     sync.RWMutex
	gw     Gateway
	logger core.Logger

	students   []Student
	attendance []AttendanceEntry
	homework   []HomeworkEntry
	fees       []FeeEntry
}

func NewStore(gw Gateway, logger core.Logger) *Store {
	return &Store{
		gw:         gw,
		logger:     logger,
		students:   make([]Student, 0),
		attendance: make([]AttendanceEntry, 0),
		homework:   make([]HomeworkEntry, 0),
		fees:       make([]FeeEntry, 0),
	}
}

// Open creates a Store and loads its containers from gw.
func Open(ctx context.Context, gw Gateway, logger core.Logger) (*Store, error) {
	s := NewStore(gw, logger)
	if err := s.Load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// =========================================================================
// Loading

// MigrateHomeworkData upgrades legacy homework entries stored in the Gateway and saves them right away.
func (s *Store) MigrateHomeworkData(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.migrateHomeworkData(ctx)
}

func (s *Store) migrateHomeworkData(ctx context.Context) (bool, error) {
	raw, err := s.gw.Load(ctx, KeyHomework)
	if err != nil {
		return false, errors.Wrap(err, "loading homework")
	}
	out, migrated, err := MigrateHomework(raw)
	if err != nil {
		s.logger.Warn("homework data is unparsable, skipping migration", err)
		return false, nil
	}
	if !migrated {
		return false, nil
	}
	if err = s.gw.Save(ctx, KeyHomework, out); err != nil {
		return true, errors.Wrap(err, "saving migrated homework")
	}
	s.logger.Info("Homework data migrated to new format")
	return true, nil
}

// Load replaces the in-memory containers with the Gateway's contents, migrating homework first.
// Absent or unparsable containers load as empty; only Gateway failures are returned.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.migrateHomeworkData(ctx); err != nil {
		return err
	}
	return s.reload(ctx)
}

// reload reads every container from the Gateway and swaps them in. Callers must hold s.mu,
// so no mutation can land between the read and the swap.
func (s *Store) reload(ctx context.Context) error {
	var (
		students   []Student
		attendance []AttendanceEntry
		homework   []HomeworkEntry
		fees       []FeeEntry
	)
	for key, dest := range map[string]interface{}{
		KeyStudents:   &students,
		KeyAttendance: &attendance,
		KeyHomework:   &homework,
		KeyFees:       &fees,
	} {
		raw, err := s.gw.Load(ctx, key)
		if err != nil {
			return errors.Wrapf(err, "loading %s", key)
		}
		if err = decodeContainer(raw, dest); err != nil {
			s.logger.Warn("container is unparsable, loading it empty", map[string]interface{}{"key": key}, err)
		}
	}

	s.students = orEmpty(students)
	s.attendance = orEmpty(attendance)
	s.homework = orEmpty(homework)
	s.fees = orEmpty(fees)
	return nil
}

// decodeContainer decodes entries one by one, so a single bad entry does not lose its container.
func decodeContainer(raw []byte, dest interface{}) error {
	if len(raw) == 0 {
		return nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return errors.Wrap(err, "decoding container")
	}

	var skipped int
	switch d := dest.(type) {
	case *[]Student:
		for _, entry := range entries {
			var v Student
			if json.Unmarshal(entry, &v) != nil {
				skipped++
				continue
			}
			*d = append(*d, v)
		}
	case *[]AttendanceEntry:
		for _, entry := range entries {
			var v AttendanceEntry
			if json.Unmarshal(entry, &v) != nil {
				skipped++
				continue
			}
			*d = append(*d, v)
		}
	case *[]HomeworkEntry:
		for _, entry := range entries {
			var v HomeworkEntry
			if json.Unmarshal(entry, &v) != nil {
				skipped++
				continue
			}
			*d = append(*d, v)
		}
	case *[]FeeEntry:
		for _, entry := range entries {
			var v FeeEntry
			if json.Unmarshal(entry, &v) != nil {
				skipped++
				continue
			}
			*d = append(*d, v)
		}
	default:
		return errors.Errorf("unknown container %T", dest)
	}
	if skipped > 0 {
		return errors.Errorf("%d unparsable entries skipped", skipped)
	}
	return nil
}

func orEmpty[T any](list []T) []T {
	if list == nil {
		return make([]T, 0)
	}
	return list
}

// =========================================================================
// Persistence

// persist writes the given containers through to the Gateway. Callers must hold s.mu.
func (s *Store) persist(ctx context.Context, keys ...string) error {
	var firstErr error
	for _, key := range keys {
		var container interface{}
		switch key {
		case KeyStudents:
			container = s.students
		case KeyAttendance:
			container = s.attendance
		case KeyHomework:
			container = s.homework
		case KeyFees:
			container = s.fees
		}

		err := func() error {
			data, err := json.Marshal(container)
			if err != nil {
				return errors.Wrapf(err, "encoding %s", key)
			}
			return errors.Wrapf(s.gw.Save(ctx, key, data), "saving %s", key)
		}()
		if err != nil {
			s.logger.Error("failed to persist container", map[string]interface{}{"key": key}, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// =========================================================================
// Students

// UpsertStudent replaces the Student with the same ID, keeping its CreatedAt.
// Otherwise the Student is added with a new ID and CreatedAt.
func (s *Store) UpsertStudent(ctx context.Context, st Student) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if idx := s.studentIndex(st.ID); st.ID != "" && idx >= 0 {
		st.CreatedAt = s.students[idx].CreatedAt
		s.students[idx] = st
	} else {
		st.ID = newIDFunc()
		st.CreatedAt = nowFunc().UTC()
		s.students = append(s.students, st)
	}
	return st, s.persist(ctx, KeyStudents)
}

// DeleteStudent removes the Student and every entry referencing it. Unknown IDs are a no-op.
func (s *Store) DeleteStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.studentIndex(id)
	if idx < 0 {
		return nil
	}
	s.students = append(s.students[:idx], s.students[idx+1:]...)
	s.attendance = filter(s.attendance, func(e AttendanceEntry) bool { return e.StudentID != id })
	s.homework = filter(s.homework, func(e HomeworkEntry) bool { return e.StudentID != id })
	s.fees = filter(s.fees, func(e FeeEntry) bool { return e.StudentID != id })
	return s.persist(ctx, AllKeys...)
}

func (s *Store) studentIndex(id string) int {
	for i, st := range s.students {
		if st.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) Student(id string) (Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if idx := s.studentIndex(id); idx >= 0 {
		return s.students[idx], true
	}
	return Student{}, false
}

func (s *Store) Students() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.students)
}

// =========================================================================
// Attendance

// AttendanceMark is one student's selection in a mark-attendance batch.
type AttendanceMark struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status" validate:"required,attstatus"`
	Note      string `json:"note"`
}

func (s *Store) upsertAttendance(studentID, date, status, note string) AttendanceEntry {
	for i, e := range s.attendance {
		if e.StudentID == studentID && e.Date == date {
			e.Status = status
			e.Note = note
			s.attendance[i] = e
			return e
		}
	}
	e := AttendanceEntry{
		ID:        newIDFunc(),
		StudentID: studentID,
		Date:      date,
		Status:    status,
		Note:      note,
		CreatedAt: nowFunc().UTC(),
	}
	s.attendance = append(s.attendance, e)
	return e
}

// UpsertAttendance updates the entry for (studentID, date), keeping its ID and CreatedAt, or adds a new one.
func (s *Store) UpsertAttendance(ctx context.Context, studentID, date, status, note string) (AttendanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.upsertAttendance(studentID, date, status, note)
	return e, s.persist(ctx, KeyAttendance)
}

// MarkAttendance upserts every mark for date, then persists once.
func (s *Store) MarkAttendance(ctx context.Context, date string, marks []AttendanceMark) ([]AttendanceEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]AttendanceEntry, 0, len(marks))
	for _, m := range marks {
		entries = append(entries, s.upsertAttendance(m.StudentID, date, m.Status, m.Note))
	}
	return entries, s.persist(ctx, KeyAttendance)
}

// FindAttendance returns the entry for (studentID, date), if any.
func (s *Store) FindAttendance(studentID, date string) (AttendanceEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.attendance {
		if e.StudentID == studentID && e.Date == date {
			return e, true
		}
	}
	return AttendanceEntry{}, false
}

func (s *Store) DeleteAttendance(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.attendance)
	if s.attendance = filter(s.attendance, func(e AttendanceEntry) bool { return e.ID != id }); len(s.attendance) == n {
		return nil
	}
	return s.persist(ctx, KeyAttendance)
}

func (s *Store) Attendance() []AttendanceEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.attendance)
}

// =========================================================================
// Homework

// HomeworkMark is one student's selection in a mark-homework batch.
// Status, when set, is the checklist selection and takes precedence over Completed.
type HomeworkMark struct {
	StudentID string `json:"studentId" validate:"required"`
	Status    string `json:"status,omitempty" validate:"omitempty,hwstatus"`
	Completed bool   `json:"completed"`
}

func (s *Store) upsertHomework(studentID, date string, completed bool) HomeworkEntry {
	for i, e := range s.homework {
		if e.StudentID == studentID && e.Date == date {
			e.Completed = completed
			s.homework[i] = e
			return e
		}
	}
	e := HomeworkEntry{
		ID:        newIDFunc(),
		StudentID: studentID,
		Date:      date,
		Completed: completed,
		CreatedAt: nowFunc().UTC(),
	}
	s.homework = append(s.homework, e)
	return e
}

// UpsertHomework updates the entry for (studentID, date), keeping its ID and CreatedAt, or adds a new one.
func (s *Store) UpsertHomework(ctx context.Context, studentID, date string, completed bool) (HomeworkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.upsertHomework(studentID, date, completed)
	return e, s.persist(ctx, KeyHomework)
}

// MarkHomework upserts every mark for date, then persists once.
func (s *Store) MarkHomework(ctx context.Context, date string, marks []HomeworkMark) ([]HomeworkEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]HomeworkEntry, 0, len(marks))
	for _, m := range marks {
		entries = append(entries, s.upsertHomework(m.StudentID, date, m.Completed))
	}
	return entries, s.persist(ctx, KeyHomework)
}

// FindHomework returns the entry for (studentID, date), if any.
func (s *Store) FindHomework(studentID, date string) (HomeworkEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.homework {
		if e.StudentID == studentID && e.Date == date {
			return e, true
		}
	}
	return HomeworkEntry{}, false
}

func (s *Store) DeleteHomework(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.homework)
	if s.homework = filter(s.homework, func(e HomeworkEntry) bool { return e.ID != id }); len(s.homework) == n {
		return nil
	}
	return s.persist(ctx, KeyHomework)
}

func (s *Store) Homework() []HomeworkEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.homework)
}

// =========================================================================
// Fees

// RecordFee always appends a new payment: fees are events, not states.
func (s *Store) RecordFee(ctx context.Context, studentID string, amount float64, paymentMode, date string) (FeeEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := FeeEntry{
		ID:          newIDFunc(),
		StudentID:   studentID,
		Amount:      amount,
		PaymentMode: paymentMode,
		Date:        date,
		CreatedAt:   nowFunc().UTC(),
	}
	s.fees = append(s.fees, e)
	return e, s.persist(ctx, KeyFees)
}

func (s *Store) DeleteFee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.fees)
	if s.fees = filter(s.fees, func(e FeeEntry) bool { return e.ID != id }); len(s.fees) == n {
		return nil
	}
	return s.persist(ctx, KeyFees)
}

func (s *Store) Fees() []FeeEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return clone(s.fees)
}

// =========================================================================
// Whole store

// Snapshot returns a copy of all four containers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Students:   clone(s.students),
		Attendance: clone(s.attendance),
		Homework:   clone(s.homework),
		Fees:       clone(s.fees),
	}
}

func filter[T any](list []T, keep func(T) bool) []T {
	kept := make([]T, 0, len(list))
	for _, v := range list {
		if keep(v) {
			kept = append(kept, v)
		}
	}
	return kept
}

func clone[T any](list []T) []T {
	cp := make([]T, len(list))
	copy(cp, list)
	return cp
}
