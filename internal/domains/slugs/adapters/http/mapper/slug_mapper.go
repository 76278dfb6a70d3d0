package mapper

import (
	"encoding/json"

	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/domain"
	"github.com/Apurer/brtx-marketplace/internal/domains/slugs/ports"
)

// WalletRequest names the wallet a directory call is about.
type WalletRequest struct {
	WalletID string `json:"walletId" binding:"required"`
}

// SlugStoreRequest adds one slug to a wallet.
type SlugStoreRequest struct {
	WalletID string `json:"walletId" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
}

// SlugList is the envelope returned by the slug lookup.
type SlugList struct {
	Message string       `json:"message"`
	Data    SlugListData `json:"data"`
}

// SlugListData keeps the capitalised key existing clients read.
type SlugListData struct {
	Slug []string `json:"Slug"`
}

// WalletSlugs is the stored wallet record.
type WalletSlugs struct {
	WalletID string   `json:"walletId"`
	Slugs    []string `json:"slugs"`
}

// Profile is a wallet's slugs with their collection listings.
type Profile struct {
	Slugs       []string         `json:"slugs"`
	Collections []SlugCollection `json:"collections"`
}

// SlugCollection carries either the listing payload or the lookup error.
type SlugCollection struct {
	Slug  string          `json:"slug"`
	Data  json.RawMessage `json:"data,omitempty"`
	Error string          `json:"error,omitempty"`
}

// FromProjectionSlugList renders the lookup envelope.
func FromProjectionSlugList(record *ports.WalletSlugsProjection) SlugList {
	out := SlugList{Message: "data slugs", Data: SlugListData{Slug: []string{}}}
	if record != nil && record.Entity != nil && record.Entity.Slugs != nil {
		out.Data.Slug = record.Entity.Slugs
	}
	return out
}

// FromProjectionWalletSlugs renders the stored record.
func FromProjectionWalletSlugs(record *ports.WalletSlugsProjection) WalletSlugs {
	if record == nil || record.Entity == nil {
		return WalletSlugs{Slugs: []string{}}
	}
	out := WalletSlugs{WalletID: record.Entity.WalletID, Slugs: record.Entity.Slugs}
	if out.Slugs == nil {
		out.Slugs = []string{}
	}
	return out
}

// FromDomainProfile renders a profile; failed lookups keep their slug and message.
func FromDomainProfile(profile *domain.Profile) Profile {
	out := Profile{Slugs: []string{}, Collections: []SlugCollection{}}
	if profile == nil {
		return out
	}
	if profile.Slugs != nil {
		out.Slugs = profile.Slugs
	}
	for _, item := range profile.Collections {
		entry := SlugCollection{Slug: item.Slug, Data: item.Data}
		if item.Failed() {
			entry = SlugCollection{Slug: item.Slug, Error: item.Err.Error()}
		}
		out.Collections = append(out.Collections, entry)
	}
	return out
}
