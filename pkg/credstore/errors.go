package credstore

import "errors"

var (
	// ErrOpenFailed indicates the backing storage could not be opened or created.
	ErrOpenFailed = errors.New("credstore.open_failed")

	// ErrPersistFailed indicates a write to the backing storage failed.
	ErrPersistFailed = errors.New("credstore.persist_failed")

	// ErrCorruptData indicates the persisted document could not be decoded.
	ErrCorruptData = errors.New("credstore.corrupt_data")
)
