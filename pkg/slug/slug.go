// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Catalogue records that arrive without a slug get one derived from their
// title ("O Justiceiro" → "o-justiceiro"); collisions are resolved with
// [Disambiguate].
package slug

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// separators matches any run of characters that cannot appear in a slug.
	separators = regexp.MustCompile(`[^a-z0-9]+`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Decompose to NFD and drop combining marks (é → e).
//  2. Lowercase.
//  3. Replace every run of non [a-z0-9] characters with a single hyphen.
//  4. Trim leading/trailing hyphens.
//
// Letters without an ASCII decomposition (CJK, Hangul) are dropped, so the
// result may be empty; callers must handle that case.
func From(s string) string {
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripAccents, s)
	if err != nil {
		result = s
	}

	result = strings.ToLower(result)
	result = separators.ReplaceAllString(result, "-")

	return strings.Trim(result, "-")
}

// Disambiguate appends a numeric suffix to base ("blue-lock" → "blue-lock-6").
func Disambiguate(base string, suffix int64) string {
	if base == "" {
		return strconv.FormatInt(suffix, 10)
	}
	return base + "-" + strconv.FormatInt(suffix, 10)
}
