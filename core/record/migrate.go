package record

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// legacyHomework is the shape homework entries had before they became daily checks:
// {id, studentId, type, description, dueDate, completed, createdAt}.
type legacyHomework struct {
	ID          json.RawMessage `json:"id"`
	StudentID   json.RawMessage `json:"studentId"`
	Type        interface{}     `json:"type"`
	Description interface{}     `json:"description"`
	DueDate     json.RawMessage `json:"dueDate"`
	Completed   interface{}     `json:"completed"`
	CreatedAt   json.RawMessage `json:"createdAt"`
}

func (hw legacyHomework) isLegacy() bool {
	var dueDate interface{}
	if len(hw.DueDate) > 0 {
		if err := json.Unmarshal(hw.DueDate, &dueDate); err != nil {
			return false
		}
	}
	return truthy(hw.Type) && truthy(hw.Description) && truthy(dueDate)
}

// migratedHomework keeps the original bytes of every carried over value.
type migratedHomework struct {
	ID        json.RawMessage `json:"id,omitempty"`
	StudentID json.RawMessage `json:"studentId,omitempty"`
	Date      json.RawMessage `json:"date"`
	Completed bool            `json:"completed"`
	CreatedAt json.RawMessage `json:"createdAt,omitempty"`
}

// MigrateHomework upgrades a raw homework container from the legacy shape.
// If any entry carries a non-empty type, description and dueDate, the container needs migration:
// each such entry is rewritten to {id, studentId, date: dueDate, completed, createdAt},
// other entries pass through unchanged.
// When nothing needs migration `raw` is returned as is and migrated is false,
// so running it again on its own output is a no-op.
func MigrateHomework(raw []byte) (out []byte, migrated bool, err error) {
	if len(raw) == 0 {
		return raw, false, nil
	}

	var entries []json.RawMessage
	if err = json.Unmarshal(raw, &entries); err != nil {
		return raw, false, errors.Wrap(err, "decoding homework")
	}

	legacy := make([]*legacyHomework, len(entries))
	for i, entry := range entries {
		var hw legacyHomework
		if json.Unmarshal(entry, &hw) != nil || !hw.isLegacy() {
			continue
		}
		legacy[i] = &hw
		migrated = true
	}
	if !migrated {
		return raw, false, nil
	}

	for i, hw := range legacy {
		if hw == nil {
			continue
		}
		if entries[i], err = json.Marshal(migratedHomework{
			ID:        hw.ID,
			StudentID: hw.StudentID,
			Date:      hw.DueDate,
			Completed: truthy(hw.Completed),
			CreatedAt: hw.CreatedAt,
		}); err != nil {
			return raw, false, errors.Wrap(err, "encoding homework")
		}
	}
	if out, err = json.Marshal(entries); err != nil {
		return raw, false, errors.Wrap(err, "encoding homework")
	}
	return out, true, nil
}

// truthy follows the loose truthiness the data was historically written with.
func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	default: // objects & arrays
		return true
	}
}
