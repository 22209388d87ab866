package record

import "context"

// Container keys
const (
	KeyStudents   = "students"
	KeyAttendance = "attendance"
	KeyFees       = "fees"
	KeyHomework   = "homework"
)

var AllKeys = []string{KeyStudents, KeyAttendance, KeyFees, KeyHomework}

// Gateway stores each container as a serialized blob under a fixed key.
// Implementations live in storage/.
type Gateway interface {
	// Load returns the blob stored under key, or nil if there is none.
	Load(ctx context.Context, key string) ([]byte, error)
	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error
}
