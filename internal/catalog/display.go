// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
)

// # Presentation Helpers

// siSuffixes maps SI prefixes onto the compact suffixes shown on cards.
var siSuffixes = map[string]string{
	"k": "K",
	"M": "M",
	"G": "B",
}

// FormatViews renders a view count the way cards show it: "999", "145.8K",
// "14.5M". Absent counts render as "0".
func FormatViews(views *int64) string {
	if views == nil {
		return "0"
	}

	value, prefix := humanize.ComputeSI(float64(*views))
	suffix, ok := siSuffixes[prefix]
	if !ok {
		return humanize.Comma(*views)
	}
	return humanize.FtoaWithDigits(value, 1) + suffix
}

// displaySuffixes maps the card suffixes back onto SI prefixes.
var displaySuffixes = strings.NewReplacer("K", "k", "B", "G", ",", "", " ", "")

// ErrInvalidViews is returned by [ParseViews] for text that is not a view count.
var ErrInvalidViews = errors.New("catalog: invalid view count")

// ParseViews reads a view count written either as a plain number ("1,204")
// or in the form [FormatViews] prints ("145.8K", "14.5M", "1.2B").
func ParseViews(text string) (int64, error) {
	normalized := displaySuffixes.Replace(strings.TrimSpace(text))
	if normalized == "" || strings.Trim(normalized, "0123456789.kMG") != "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidViews, text)
	}

	value, unit, err := humanize.ParseSI(normalized)
	if err != nil || unit != "" || value < 0 || value >= math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidViews, text)
	}
	return int64(math.Round(value)), nil
}

// FormatRating renders a rating with one decimal, or "N/A" when absent.
func FormatRating(rating *float64) string {
	if rating == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*rating, 'f', 1, 64)
}

/*
RelativeTime renders the distance between t and now in the short pt-BR forms
used across the site: "30min atrás", "2sem atrás", "3meses atrás".

Times in the future render as "agora". Months count 30 days and years 365.
*/
func RelativeTime(t, now time.Time) string {
	seconds := int64(now.Sub(t) / time.Second)
	if seconds < 0 {
		return "agora"
	}

	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7

	switch {
	case seconds < 60:
		return strconv.FormatInt(seconds, 10) + "s atrás"
	case minutes < 60:
		return strconv.FormatInt(minutes, 10) + "min atrás"
	case hours < 24:
		return strconv.FormatInt(hours, 10) + "h atrás"
	case days < 7:
		return strconv.FormatInt(days, 10) + "d atrás"
	case weeks < 4:
		return strconv.FormatInt(weeks, 10) + "sem atrás"
	}

	// 28 and 29 days are past four weeks but short of a 30-day month; 360 to
	// 364 days are past twelve months but short of a year
	months := max(days/30, 1)
	if months < 12 {
		return plural(months, "mês", "meses") + " atrás"
	}
	return plural(max(days/365, 1), "ano", "anos") + " atrás"
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return "1" + one
	}
	return strconv.FormatInt(n, 10) + many
}

// # Badges

// Badges are the ribbons a new title can wear.
var Badges = []string{"NOVO", "HOT", "TOP", "UP"}

// BadgePicker assigns a random ribbon to new titles. Safe for concurrent use.
type BadgePicker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBadgePicker returns a picker drawing from rng. A nil rng is seeded from
// the runtime's random source.
func NewBadgePicker(rng *rand.Rand) *BadgePicker {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &BadgePicker{rng: rng}
}

// Pick returns a badge for new titles and "" for the others.
func (picker *BadgePicker) Pick(record TitleRecord) string {
	if !record.IsNew {
		return ""
	}

	picker.mu.Lock()
	defer picker.mu.Unlock()
	return Badges[picker.rng.IntN(len(Badges))]
}
