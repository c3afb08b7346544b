// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staranto/linkctl/internal/cacheutil"
	"github.com/staranto/linkctl/internal/links"
	"github.com/staranto/linkctl/internal/source"
)

// stubSource returns fixed records and counts calls.
type stubSource struct {
	records []links.Record
	err     error
	calls   int
}

func (s *stubSource) ReadAll(string) ([]links.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	out := make([]links.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func manyRecords(n int) []links.Record {
	out := make([]links.Record, n)
	for i := range out {
		out[i] = links.Record{URL: fmt.Sprintf("http://%d", i), Name: fmt.Sprintf("site %02d", n-i)}
	}
	return out
}

func newTestCache(t *testing.T, src source.Source, opts ...Option) (*Cache, *cacheutil.FileStore) {
	t.Helper()
	store := cacheutil.NewFileStore(t.TempDir())
	opts = append([]Option{WithSource(src), WithRand(links.NewRand(11))}, opts...)
	return New(store, opts...), store
}

func TestGet_SkipsRowsWithoutURL(t *testing.T) {
	p := filepath.Join(t.TempDir(), "links.csv")
	require.NoError(t, os.WriteFile(p, []byte("http://a,zeta\nhttp://b,alpha\n,gamma\n"), 0o600))

	c := New(cacheutil.NewFileStore(t.TempDir()), WithRand(links.NewRand(5)))

	got, err := c.Get("cli", p, 10)
	require.NoError(t, err)
	assert.Equal(t, []links.Record{
		{URL: "http://b", Name: "Alpha"},
		{URL: "http://a", Name: "Zeta"},
	}, got)
}

func TestGet_MissThenHitIsStable(t *testing.T) {
	src := &stubSource{records: manyRecords(40)}
	c, store := newTestCache(t, src)

	first, err := c.Get("/page?x=1", "ignored.xlsx", 10)
	require.NoError(t, err)
	assert.Len(t, first, 10)
	assert.Equal(t, 1, src.calls)

	stored, ok, err := store.Read(c.Key("/page?x=1"))
	require.NoError(t, err)
	require.True(t, ok)

	for i := 0; i < 3; i++ {
		again, err := c.Get("/page?x=1", "ignored.xlsx", 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, src.calls, "hit must not touch the source")

	after, _, _ := store.Read(c.Key("/page?x=1"))
	assert.Equal(t, stored, after, "hit must not rewrite the entry")
}

func TestGet_HitIgnoresLimitAndSource(t *testing.T) {
	src := &stubSource{records: manyRecords(20)}
	c, _ := newTestCache(t, src)

	first, err := c.Get("ctx", "a.xlsx", 5)
	require.NoError(t, err)

	src.err = &source.NotFoundError{Path: "a.xlsx"}
	again, err := c.Get("ctx", "a.xlsx", 15)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestGet_DistinctContextsDistinctEntries(t *testing.T) {
	src := &stubSource{records: manyRecords(20)}
	c, store := newTestCache(t, src)

	_, err := c.Get("a", "x", 3)
	require.NoError(t, err)
	_, err = c.Get("b", "x", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)

	_, okA := store.EntryPath(c.Key("a"))
	_, okB := store.EntryPath(c.Key("b"))
	assert.True(t, okA)
	assert.True(t, okB)
}

func TestGet_ResultProperties(t *testing.T) {
	src := &stubSource{records: []links.Record{
		{URL: "http://1", Name: "zebra"},
		{URL: "http://2", Name: "Apple"},
		{URL: "http://3", Name: "éclair"},
		{URL: "http://4", Name: "banana"},
		{URL: "http://5", Name: "Cherry"},
		{URL: "http://6", Name: "apricot"},
		{URL: "http://7", Name: "42 things"},
	}}

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 3, want: 3},
		{limit: 7, want: 7},
		{limit: 100, want: 7},
		{limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("limit=%d", tt.limit), func(t *testing.T) {
			c, _ := newTestCache(t, src)
			got, err := c.Get("ctx", "x", tt.limit)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)

			for i, r := range got {
				first, _ := utf8.DecodeRuneInString(r.Name)
				if unicode.IsLetter(first) {
					assert.True(t, unicode.IsUpper(first), "name %q", r.Name)
				}
				if i > 0 {
					assert.LessOrEqual(t, strings.ToLower(got[i-1].Name), strings.ToLower(r.Name))
				}
			}
		})
	}
}

func TestGet_EmptySource(t *testing.T) {
	c, store := newTestCache(t, &stubSource{})

	got, err := c.Get("ctx", "x", 10)
	require.NoError(t, err)
	assert.Empty(t, got)

	data, ok, _ := store.Read(c.Key("ctx"))
	assert.True(t, ok)
	assert.Equal(t, "[]\n", string(data))
}

func TestGet_SourceMissing(t *testing.T) {
	c := New(cacheutil.NewFileStore(t.TempDir()))

	missing := filepath.Join(t.TempDir(), "links.xlsx")
	got, err := c.Get("ctx", missing, 10)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrSourceMissing))

	var sm *SourceMissingError
	require.True(t, errors.As(err, &sm))
	assert.Equal(t, missing, sm.Path)

	var nf *source.NotFoundError
	assert.True(t, errors.As(err, &nf))
}

func TestGet_OtherSourceErrorIsNotSourceMissing(t *testing.T) {
	c, _ := newTestCache(t, &stubSource{err: errors.New("boom")})

	_, err := c.Get("ctx", "x", 10)
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrSourceMissing))
}

func TestGet_StoredFormat(t *testing.T) {
	src := &stubSource{records: []links.Record{
		{URL: "http://a?x=1&y=2", Name: "<b>ünïcode</b>"},
	}}
	c, store := newTestCache(t, src)

	_, err := c.Get("ctx", "x", 10)
	require.NoError(t, err)

	data, _, _ := store.Read(c.Key("ctx"))
	assert.Equal(t, "[\n  {\n    \"url\": \"http://a?x=1&y=2\",\n    \"name\": \"<b>ünïcode</b>\"\n  }\n]\n", string(data))
}

func TestGet_CorruptEntry(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		policy    CorruptPolicy
		wantLen   int
		wantCalls int
	}{
		{name: "garbage empties", content: "{not json", policy: CorruptEmpty, wantLen: 0, wantCalls: 0},
		{name: "object empties", content: `{"url":"x"}`, policy: CorruptEmpty, wantLen: 0, wantCalls: 0},
		{name: "wrong element type empties", content: `[1, 2]`, policy: CorruptEmpty, wantLen: 0, wantCalls: 0},
		{name: "null is empty, not corrupt", content: `null`, policy: CorruptRecompute, wantLen: 0, wantCalls: 0},
		{name: "garbage recomputes", content: "{not json", policy: CorruptRecompute, wantLen: 4, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &stubSource{records: manyRecords(8)}
			c, store := newTestCache(t, src, WithCorruptPolicy(tt.policy))
			require.NoError(t, store.Write(c.Key("ctx"), []byte(tt.content)))

			got, err := c.Get("ctx", "x", 4)
			require.NoError(t, err)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.wantLen)
			assert.Equal(t, tt.wantCalls, src.calls)

			if tt.policy == CorruptRecompute && tt.wantCalls > 0 {
				again, err := c.Get("ctx", "x", 4)
				require.NoError(t, err)
				assert.Equal(t, got, again)
				assert.Equal(t, 1, src.calls)
			}
		})
	}
}

func TestInvalidate(t *testing.T) {
	src := &stubSource{records: manyRecords(30)}
	c, store := newTestCache(t, src)

	_, err := c.Get("ctx", "x", 5)
	require.NoError(t, err)

	require.NoError(t, c.Invalidate("ctx"))
	_, ok := store.EntryPath(c.Key("ctx"))
	assert.False(t, ok)

	_, err = c.Get("ctx", "x", 5)
	require.NoError(t, err)
	assert.Equal(t, 2, src.calls)
}

// failingStore accepts reads but never stores anything.
type failingStore struct{}

func (failingStore) Read(string) ([]byte, bool, error) { return nil, false, nil }
func (failingStore) Write(string, []byte) error        { return errors.New("disk full") }
func (failingStore) Delete(string) error               { return nil }

func TestGet_WriteFailureStillReturnsLinks(t *testing.T) {
	src := &stubSource{records: manyRecords(5)}
	c := New(failingStore{}, WithSource(src), WithRand(links.NewRand(1)))

	got, err := c.Get("ctx", "x", 3)
	assert.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestParseCorruptPolicy(t *testing.T) {
	p, err := ParseCorruptPolicy("")
	assert.NoError(t, err)
	assert.Equal(t, CorruptEmpty, p)

	p, err = ParseCorruptPolicy(" Recompute ")
	assert.NoError(t, err)
	assert.Equal(t, CorruptRecompute, p)

	_, err = ParseCorruptPolicy("retry")
	assert.ErrorContains(t, err, "must be one of")
}
