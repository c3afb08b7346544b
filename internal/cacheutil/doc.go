// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package cacheutil provides the storage layer for cache entries: key
// encoding, a one-file-per-entry store, and age based purging.
package cacheutil
