package domain

import (
	"errors"
)

var (
	ErrInternal = errors.New("internal error")

	// * Data errors.
	ErrDataNotFound     = errors.New("data not found")
	ErrConflictingData  = errors.New("data conflicts with existing data in unique column")
	ErrStoreUnavailable = errors.New("receipt store is unavailable")

	// * Communication errors.
	ErrBadRequest = errors.New("error parsing request")

	// * Business errors.
	ErrMalformedInput = errors.New("malformed receipt field")
	ErrInvalidReceipt = errors.New("the receipt is invalid")
)
