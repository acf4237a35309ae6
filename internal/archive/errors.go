package archive

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrFolderNotFound = errors.New("folder not found")
	ErrFolderNotEmpty = errors.New("folder still contains records")
	ErrDefaultFolder  = errors.New("the default folder cannot be deleted")
	ErrStorageFailure = errors.New("archive storage failure")
)

// StorageError wraps a failure of the underlying blob store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "archive storage " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorageFailure }
