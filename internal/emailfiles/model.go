package emailfiles

import "time"

// EmailFile represents one uploaded email artifact owned by a user.
// Content bytes live in the object store under StorageKey; the record
// itself never carries them.
type EmailFile struct {
	ID         string
	UserID     string
	Filename   string
	FileType   string
	SizeBytes  int64
	StorageKey string
	CreatedAt  time.Time
}
