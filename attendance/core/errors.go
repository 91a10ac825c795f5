package core

import "errors"

var (
	// ErrUnknownEmployee reports a scan for a badge code with no matching
	// employee.
	ErrUnknownEmployee = errors.New("attendance: unknown employee")
	// ErrContention reports that a scan lost the transactional race too
	// many times in a row.
	ErrContention = errors.New("attendance: persistent transaction contention")
	// ErrTimeout reports that the caller's deadline expired before the
	// scan committed.
	ErrTimeout = errors.New("attendance: operation timed out")
	// ErrStoreUnavailable reports that the record store could not be
	// reached. The scan is lost and must be repeated.
	ErrStoreUnavailable = errors.New("attendance: record store unavailable")
)
