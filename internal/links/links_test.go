// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package links

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeRecords(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{URL: fmt.Sprintf("http://%d", i), Name: fmt.Sprintf("name%02d", i)}
	}
	return out
}

func TestSample_Size(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		limit int
		want  int
	}{
		{name: "limit below size", n: 20, limit: 10, want: 10},
		{name: "limit above size", n: 3, limit: 10, want: 3},
		{name: "limit equals size", n: 5, limit: 5, want: 5},
		{name: "empty source", n: 0, limit: 10, want: 0},
		{name: "zero limit", n: 5, limit: 0, want: 0},
		{name: "negative limit", n: 5, limit: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sample(makeRecords(tt.n), tt.limit, NewRand(42))
			assert.Len(t, got, tt.want)
			assert.NotNil(t, got)
		})
	}
}

func TestSample_DistinctAndFromSource(t *testing.T) {
	all := makeRecords(50)
	got := Sample(all, 25, NewRand(7))

	seen := map[string]bool{}
	for _, r := range got {
		assert.False(t, seen[r.URL], "duplicate %s", r.URL)
		seen[r.URL] = true
		assert.Contains(t, all, r)
	}
}

func TestSample_DoesNotMutateInput(t *testing.T) {
	all := makeRecords(10)
	before := make([]Record, len(all))
	copy(before, all)

	_ = Sample(all, 5, NewRand(1))
	assert.Equal(t, before, all)
}

func TestSample_SeededIsDeterministic(t *testing.T) {
	all := makeRecords(30)
	a := Sample(all, 10, NewRand(99))
	b := Sample(all, 10, NewRand(99))
	assert.Equal(t, a, b)
}

func TestSample_Uniformish(t *testing.T) {
	// Every record should be picked at least once over many draws.
	all := makeRecords(10)
	rng := NewRand(3)
	counts := map[string]int{}
	for i := 0; i < 2000; i++ {
		for _, r := range Sample(all, 3, rng) {
			counts[r.URL]++
		}
	}
	assert.Len(t, counts, 10)
	for url, c := range counts {
		// Expected 600 each.
		assert.InDelta(t, 600, c, 150, "url %s", url)
	}
}

func TestNormalize(t *testing.T) {
	in := []Record{
		{URL: "http://a", Name: "zeta"},
		{URL: "http://b", Name: "alpha"},
		{URL: "http://c", Name: "Beta"},
		{URL: "http://d", Name: "ärger"},
		{URL: "http://e", Name: "beta"},
	}

	got := Normalize(in)

	assert.Equal(t, []Record{
		{URL: "http://b", Name: "Alpha"},
		{URL: "http://c", Name: "Beta"},
		{URL: "http://e", Name: "Beta"},
		{URL: "http://a", Name: "Zeta"},
		{URL: "http://d", Name: "Ärger"},
	}, got)

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, strings.ToLower(got[i-1].Name), strings.ToLower(got[i].Name))
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alpha", "Alpha"},
		{"Alpha", "Alpha"},
		{"éclair", "Éclair"},
		{"яблоко", "Яблоко"},
		{"1st place", "1st place"},
		{"a", "A"},
		{"", ""},
		{"aBC", "ABC"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Capitalize(tt.in))
		})
	}
}
