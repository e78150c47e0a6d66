// Package apperr holds the failure kinds shared by the recipe service and
// the layers that present its results.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest means caller supplied data broke a business rule.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound means the referenced recipe does not exist.
	ErrNotFound = errors.New("not found")
	// ErrStorage means the store was unavailable or could not commit a write.
	ErrStorage = errors.New("storage failure")
	// ErrInternal is everything else.
	ErrInternal = errors.New("internal error")
)

// Kind identifies which of the sentinel errors an error belongs to.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidRequest
	KindNotFound
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotFound:
		return "not_found"
	case KindStorage:
		return "storage_failure"
	default:
		return "internal"
	}
}

// InvalidRequest wraps msg as an ErrInvalidRequest.
func InvalidRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}

// NotFound wraps msg as an ErrNotFound.
func NotFound(msg string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, msg)
}

// Storage marks err as a storage failure while keeping it in the chain.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// KindOf classifies err. Unclassified errors are internal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrInvalidRequest):
		return KindInvalidRequest
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrStorage):
		return KindStorage
	default:
		return KindInternal
	}
}
