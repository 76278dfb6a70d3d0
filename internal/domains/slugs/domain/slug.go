package domain

import (
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strings"
)

var (
	// ErrInvalidSlug is returned for slugs outside lowercase letters, digits and single inner hyphens.
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrMissingWallet is returned when no wallet id is supplied.
	ErrMissingWallet = errors.New("wallet id is required")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ValidateSlug checks slug syntax.
func ValidateSlug(slug string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	return nil
}

// ValidateWallet checks a wallet id is present.
func ValidateWallet(walletID string) error {
	if strings.TrimSpace(walletID) == "" {
		return ErrMissingWallet
	}
	return nil
}

// WalletSlugs is the set of collection slugs a wallet follows, in insertion order.
type WalletSlugs struct {
	WalletID string
	Slugs    []string
}

// NewWalletSlugs creates an empty set for the wallet.
func NewWalletSlugs(walletID string) *WalletSlugs {
	return &WalletSlugs{WalletID: walletID, Slugs: []string{}}
}

// Add inserts the slug unless present and reports whether the set changed.
func (w *WalletSlugs) Add(slug string) bool {
	if w.Has(slug) {
		return false
	}
	w.Slugs = append(w.Slugs, slug)
	return true
}

// Has reports set membership.
func (w *WalletSlugs) Has(slug string) bool {
	return slices.Contains(w.Slugs, slug)
}

// Clone returns a deep copy.
func (w *WalletSlugs) Clone() *WalletSlugs {
	if w == nil {
		return nil
	}
	return &WalletSlugs{WalletID: w.WalletID, Slugs: slices.Clone(w.Slugs)}
}

// SlugCollection is the listing lookup result for one slug. Exactly one of Data or Err is set.
type SlugCollection struct {
	Slug string
	Data json.RawMessage
	Err  error
}

// Failed reports whether the lookup for this slug failed.
func (c SlugCollection) Failed() bool {
	return c.Err != nil
}

// Profile aggregates a wallet's slugs with their collection listings.
type Profile struct {
	Slugs       []string
	Collections []SlugCollection
}
