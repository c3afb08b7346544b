// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package source reads (url, name) link records from a tabular file. The
// spreadsheet, CSV or JSON reader is picked from the file extension.
package source
