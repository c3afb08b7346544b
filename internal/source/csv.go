// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/csv"
	"os"
)

type csvReader struct{}

func (csvReader) Rows(path string) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(records))
	for _, rec := range records {
		row := make([]any, len(rec))
		for i, c := range rec {
			row[i] = c
		}
		rows = append(rows, row)
	}
	return rows, nil
}
