package record

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/tuition/core"
)

// Document is the full export of the store.
type Document struct {
	Students   []Student         `json:"students"`
	Attendance []AttendanceEntry `json:"attendance"`
	Fees       []FeeEntry        `json:"fees"`
	Homework   []HomeworkEntry   `json:"homework"`
	ExportDate time.Time         `json:"exportDate"`
}

// ExportFilename returns eg: "tuition-data-2024-01-10.json".
func ExportFilename(now time.Time) string {
	return "tuition-data-" + core.FormatDate(now) + ".json"
}

// Export returns every container along with the export timestamp.
func (s *Store) Export() Document {
	snap := s.Snapshot()
	return Document{
		Students:   snap.Students,
		Attendance: snap.Attendance,
		Fees:       snap.Fees,
		Homework:   snap.Homework,
		ExportDate: nowFunc().UTC(),
	}
}

type rawDocument struct {
	Students   json.RawMessage `json:"students"`
	Attendance json.RawMessage `json:"attendance"`
	Fees       json.RawMessage `json:"fees"`
	Homework   json.RawMessage `json:"homework"`
	ExportDate *time.Time      `json:"exportDate"`
}

// ParseDocument decodes an exported Document. Missing containers decode as empty ones,
// legacy homework entries are migrated.
// Anything else than a well-formed Document is rejected with a *core.ValidationError wrapping ErrMalformedDocument.
func ParseDocument(r io.Reader) (Document, error) {
	malformed := func(err error) error {
		return core.NewValidationError(errors.Wrap(ErrMalformedDocument, err.Error()))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, errors.Wrap(err, "reading document")
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return Document{}, malformed(errors.New("expected a JSON object"))
	}

	var raw rawDocument
	if err = json.Unmarshal(data, &raw); err != nil {
		return Document{}, malformed(err)
	}

	homework, _, err := MigrateHomework(nullAsEmpty(raw.Homework))
	if err != nil {
		return Document{}, malformed(err)
	}

	var doc Document
	containers := []struct {
		key  string
		data []byte
		dest interface{}
	}{
		{KeyStudents, nullAsEmpty(raw.Students), &doc.Students},
		{KeyAttendance, nullAsEmpty(raw.Attendance), &doc.Attendance},
		{KeyFees, nullAsEmpty(raw.Fees), &doc.Fees},
		{KeyHomework, homework, &doc.Homework},
	}
	for _, c := range containers {
		if len(c.data) == 0 {
			continue
		}
		if err = json.Unmarshal(c.data, c.dest); err != nil {
			return Document{}, malformed(errors.Wrap(err, c.key))
		}
	}

	doc.Students = orEmpty(doc.Students)
	doc.Attendance = orEmpty(doc.Attendance)
	doc.Fees = orEmpty(doc.Fees)
	doc.Homework = orEmpty(doc.Homework)
	if raw.ExportDate != nil {
		doc.ExportDate = *raw.ExportDate
	}
	return doc, nil
}

func nullAsEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return raw
}

// Import replaces all four containers with the Document's, persists them and reloads the store.
// There are no merge semantics. The whole operation holds the lock, so a concurrent
// mutation lands either before the import (and is replaced) or after the reload.
func (s *Store) Import(ctx context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = clone(orEmpty(doc.Students))
	s.attendance = clone(orEmpty(doc.Attendance))
	s.homework = clone(orEmpty(doc.Homework))
	s.fees = clone(orEmpty(doc.Fees))
	if err := s.persist(ctx, AllKeys...); err != nil {
		return errors.Wrap(err, "persisting imported data")
	}
	return errors.Wrap(s.reload(ctx), "reloading imported data")
}
