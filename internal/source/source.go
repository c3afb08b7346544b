// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/linkctl/internal/links"
)

// NotFoundError reports a link source path that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("link source not found: %s", e.Path)
}

// Unwrap lets errors.Is(err, fs.ErrNotExist) match.
func (e *NotFoundError) Unwrap() error {
	return fs.ErrNotExist
}

// Reader produces the raw cell values of every row in a file, top to bottom.
type Reader interface {
	Rows(path string) ([][]any, error)
}

// Source is the link source used by the cache on a miss.
type Source interface {
	ReadAll(path string) ([]links.Record, error)
}

// FileSource reads links from a file on disk.
type FileSource struct{}

// ReadAll implements Source.
func (FileSource) ReadAll(path string) ([]links.Record, error) {
	return ReadAll(path)
}

// ReaderFor returns the Reader for path based on its extension. Anything that
// is not CSV or JSON is treated as a spreadsheet.
func ReaderFor(path string) Reader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return csvReader{}
	case ".json":
		return jsonReader{}
	default:
		return xlsxReader{}
	}
}

// ReadAll reads every row of the file at path and returns the rows whose
// first two cells are both non-empty after trimming.
func ReadAll(path string) ([]links.Record, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("failed to stat link source: %w", err)
	}

	rows, err := ReaderFor(path).Rows(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read link source %s: %w", path, err)
	}

	records := make([]links.Record, 0, len(rows))
	for _, row := range rows {
		if r, ok := recordFromRow(row); ok {
			records = append(records, r)
		}
	}

	log.Debugf("read %d of %d rows from %s", len(records), len(rows), path)
	return records, nil
}

func recordFromRow(row []any) (links.Record, bool) {
	var cells [2]string
	for i := range cells {
		if i < len(row) {
			cells[i] = CellString(row[i])
		}
	}

	if cells[0] == "" || cells[1] == "" {
		return links.Record{}, false
	}
	return links.Record{URL: cells[0], Name: cells[1]}, true
}

// CellString coerces a raw cell value to a trimmed string. Multi-value cells
// contribute only their first element.
func CellString(value any) string {
	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return ""
		}
		value = v[0]
	case []string:
		if len(v) == 0 {
			return ""
		}
		value = v[0]
	}

	var s string
	switch v := value.(type) {
	case nil:
		s = ""
	case string:
		s = v
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		s = strconv.Itoa(v)
	case int64:
		s = strconv.FormatInt(v, 10)
	case bool:
		s = strconv.FormatBool(v)
	default:
		s = fmt.Sprintf("%v", v)
	}

	return strings.TrimSpace(s)
}
