// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package util provides general-purpose utility functions including
// storefront handle generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxHandleLength is the maximum length of a storefront handle.
const MaxHandleLength = 32

var (
	// quoteChars matches straight and typographic quotes, which are dropped
	// rather than collapsed to hyphens ("Joe's Cuts" -> "joes-cuts").
	quoteChars = regexp.MustCompile("['‘’\"“”`]+")
	// nonAlphanumeric matches runs of characters that are not lowercase
	// alphanumerics; each run collapses to a single hyphen.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify converts free-text input to a URL-safe storefront handle.
// It strips accents, transliterates to ASCII, lowercases, drops quotes,
// collapses every other non-alphanumeric run to a single hyphen, trims
// leading/trailing hyphens, and truncates to MaxHandleLength.
// Symbol-only input yields an empty string.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	// Transliterate anything left outside ASCII
	result = unidecode.Unidecode(result)

	result = strings.ToLower(result)
	result = quoteChars.ReplaceAllString(result, "")
	result = nonAlphanumeric.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxHandleLength {
		result = strings.TrimRight(result[:MaxHandleLength], "-")
	}

	return result
}

// IsValidHandle checks if a string is a valid storefront handle.
func IsValidHandle(s string) bool {
	if s == "" || len(s) > MaxHandleLength {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	// Must not start or end with a hyphen
	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
