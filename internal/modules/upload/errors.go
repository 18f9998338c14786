package upload

import "errors"

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrEmptyFile       = errors.New("file is empty")
	ErrFileTooLarge    = errors.New("file exceeds maximum allowed size")
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrTooManyFiles    = errors.New("too many files in one request")
	ErrInvalidFilename = errors.New("invalid filename")
	ErrFileNotFound    = errors.New("file not found")
)

// IsRejected reports whether err means the client sent an unacceptable
// upload, as opposed to a storage failure.
func IsRejected(err error) bool {
	return errors.Is(err, ErrNoFile) ||
		errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrFileTooLarge) ||
		errors.Is(err, ErrInvalidFileType) ||
		errors.Is(err, ErrTooManyFiles)
}
