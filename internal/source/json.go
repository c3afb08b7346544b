// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"errors"
	"os"

	"github.com/tidwall/gjson"
)

// jsonReader reads a JSON array of rows. A row is either an array of cells,
// where a cell may itself be an array, or an object with url and name keys
// such as a previously written cache entry.
type jsonReader struct{}

func (jsonReader) Rows(path string) ([][]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsArray() {
		return nil, errors.New("expected a JSON array of rows")
	}

	var rows [][]any
	doc.ForEach(func(_, row gjson.Result) bool {
		switch {
		case row.IsArray():
			cells := row.Array()
			r := make([]any, len(cells))
			for i, c := range cells {
				r[i] = c.Value()
			}
			rows = append(rows, r)
		case row.IsObject():
			rows = append(rows, []any{row.Get("url").Value(), row.Get("name").Value()})
		default:
			rows = append(rows, []any{row.Value()})
		}
		return true
	})

	return rows, nil
}
