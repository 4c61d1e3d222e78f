package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrNotFound indicates a required resource was not found
	ErrNotFound = errors.New("not found")

	// ErrCorrupt indicates a database or project file is corrupt or unreadable
	ErrCorrupt = errors.New("corrupt file")

	// ErrNoDives indicates an operation needs at least one dive in the dataset
	ErrNoDives = errors.New("no dives in dataset")

	// ErrNoSuchTrip indicates the named trip does not exist in the dataset
	ErrNoSuchTrip = errors.New("no such trip")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
