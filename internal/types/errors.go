package types

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("channel not found")
	ErrNoLocation        = errors.New("catalog location undeterminable")
	ErrStructural        = errors.New("no compatible catalog shape")
	ErrPersist           = errors.New("catalog persist failed")
	ErrInvalidGateConfig = errors.New("invalid gate config")

	ErrInvalidBackend = errors.New("invalid backend")
	ErrCatalogAccess  = errors.New("catalog read/write error")
)

func Err(typedError error, innerErr error, msgTemplate string, args ...any) error {
	if msgTemplate == "" {
		return errors.Join(typedError, innerErr)
	} else {
		return errors.Join(typedError, innerErr, fmt.Errorf(msgTemplate, args...))
	}
}
