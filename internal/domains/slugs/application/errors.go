package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid slug input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidSlug) || errors.Is(err, domain.ErrMissingWallet) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
