// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cache implements the link cache: one stored sample of links per
// request context, computed from the link source on first use and returned
// verbatim on every later call until the entry is deleted.
package cache
