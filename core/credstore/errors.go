package credstore

import "errors"

var (
	// ErrSaveRecord is returned when serializing, encrypting, or writing a
	// credential record fails.
	ErrSaveRecord = errors.New("failed to save credential record")

	// ErrLoadRecord is returned when the cache itself fails; integrity
	// failures are reported as a miss, not an error.
	ErrLoadRecord = errors.New("failed to load credential record")

	// ErrDeleteRecord is returned when removing a credential record fails.
	ErrDeleteRecord = errors.New("failed to delete credential record")
)
