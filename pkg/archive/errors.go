package archive

import "errors"

var (
	ErrInvalidKey    = errors.New("invalid object key")
	ErrInvalidConfig = errors.New("invalid archive configuration")
	ErrNotFound      = errors.New("object not found")

	ErrFailedToWrite = errors.New("failed to write object")
	ErrFailedToRead  = errors.New("failed to read object")
	ErrFailedToList  = errors.New("failed to list objects")

	ErrFailedToLoadConfig = errors.New("failed to load AWS config")
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrOperationTimeout   = errors.New("operation timed out")
	ErrOperationCanceled  = errors.New("operation canceled")
)
