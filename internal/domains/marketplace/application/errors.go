package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/brtx-marketplace/internal/domains/marketplace/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid marketplace input")
	// ErrApprovalFailed wraps failures of the token approval step.
	ErrApprovalFailed = errors.New("approval failed")
	// ErrPurchaseFailed wraps failures submitting or confirming the purchase.
	ErrPurchaseFailed = errors.New("purchase failed")
	// ErrTransferFailed wraps failures of an NFT name transfer.
	ErrTransferFailed = errors.New("name transfer failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingRecipient) ||
		errors.Is(err, domain.ErrInvalidTokenID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
