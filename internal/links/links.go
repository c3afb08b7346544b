// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package links

import (
	"math/rand"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Record is a single (url, name) pair read from a link source.
type Record struct {
	URL  string `json:"url" yaml:"url"`
	Name string `json:"name" yaml:"name"`
}

// Sample returns min(limit, len(all)) distinct records chosen uniformly at
// random from all. all is not modified. A nil rng falls back to a
// time-seeded generator.
func Sample(all []Record, limit int, rng *rand.Rand) []Record {
	k := limit
	if k > len(all) {
		k = len(all)
	}
	if k <= 0 {
		return []Record{}
	}

	if rng == nil {
		rng = NewRand(0)
	}

	// Partial Fisher-Yates over a copy; the first k slots are the sample.
	pool := make([]Record, len(all))
	copy(pool, all)
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	return pool[:k]
}

// Normalize sorts records by name, case-insensitively and stable on ties,
// then upper-cases the first character of each name. It works in place and
// returns records for convenience.
func Normalize(records []Record) []Record {
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Name) < strings.ToLower(records[j].Name)
	})

	for i := range records {
		records[i].Name = Capitalize(records[i].Name)
	}

	return records
}

// Capitalize upper-cases the first rune of s and leaves the rest untouched.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
