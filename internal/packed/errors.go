package packed

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLength reports a component slice of the wrong length.
	ErrInvalidLength = errors.New("packed: invalid component count")

	// ErrUnknownFormat reports a format name missing from the registry.
	ErrUnknownFormat = errors.New("packed: unknown format")
)

func checkLen(typ string, got, want int) error {
	if got != want {
		return fmt.Errorf("%s: got %d components, want %d: %w", typ, got, want, ErrInvalidLength)
	}
	return nil
}
