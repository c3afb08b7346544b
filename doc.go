// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// linkctl picks a random sample of links from a spreadsheet, caches the
// sample per request context, and renders it as an HTML list. It wires the
// CLI, delegates to internal packages, and serves as the entry point.
package main
