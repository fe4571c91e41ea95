// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package preview

import (
	"strconv"
	"strings"
)

// parsePrice extracts the first numeric amount from a free-text price
// string ("$45", "45.00", "from $20"). Returns 0 and false when no
// amount parses: the item renders as free / not priced, never as an
// error.
func parsePrice(s string) (float64, bool) {
	var b strings.Builder
	seen := false
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			seen = true
		case r == '.' && seen:
			b.WriteRune(r)
		case r == ',':
			// Thousands separator, skip.
		default:
			if seen {
				// First numeric run ended.
				goto done
			}
		}
	}
done:
	if !seen {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimRight(b.String(), "."), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// showPrice reports whether a price string should be displayed: only
// when it parses to a positive amount.
func showPrice(s string) bool {
	v, ok := parsePrice(s)
	return ok && v > 0
}
