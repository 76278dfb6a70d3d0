package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSlug(t *testing.T) {
	cases := map[string]bool{
		"abc-1":   true,
		"abc":     true,
		"a1-b2-c": true,
		"-abc":    false,
		"abc--1":  false,
		"Abc1":    false,
		"abc-":    false,
		"":        false,
		"ab c":    false,
		"ab_c":    false,
	}
	for slug, valid := range cases {
		t.Run(slug, func(t *testing.T) {
			err := ValidateSlug(slug)
			if valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidSlug)
		})
	}
}

func TestWalletSlugs_AddIsSetLike(t *testing.T) {
	w := NewWalletSlugs("0xabc")
	require.True(t, w.Add("foo"))
	require.True(t, w.Add("bar"))
	require.False(t, w.Add("foo"))
	require.Equal(t, []string{"foo", "bar"}, w.Slugs)

	clone := w.Clone()
	clone.Add("baz")
	require.Len(t, w.Slugs, 2)
}

func TestValidateWallet(t *testing.T) {
	require.ErrorIs(t, ValidateWallet("  "), ErrMissingWallet)
	require.NoError(t, ValidateWallet("0xabc"))
}
