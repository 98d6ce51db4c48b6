package emailfiles

import "time"

// EmailFileResponse is the outward-facing representation of an email file.
type EmailFileResponse struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(f EmailFile) EmailFileResponse {
	return EmailFileResponse{
		ID:        f.ID,
		Filename:  f.Filename,
		FileType:  f.FileType,
		FileSize:  f.SizeBytes,
		CreatedAt: f.CreatedAt,
	}
}
