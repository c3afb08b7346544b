// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"fmt"

	"github.com/apex/log"
	"github.com/xuri/excelize/v2"
)

// xlsxReader reads the active sheet of a workbook.
type xlsxReader struct{}

func (xlsxReader) Rows(path string) (result [][]any, err error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			log.WithError(cerr).Warnf("failed to close workbook %s", path)
		}
	}()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, fmt.Errorf("workbook has no active sheet")
	}
	log.Debugf("reading sheet %q", sheet)

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			return nil, err
		}
		row := make([]any, len(cols))
		for i, c := range cols {
			row[i] = c
		}
		result = append(result, row)
	}

	return result, rows.Error()
}
