// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package links holds the link record type and the sampling and
// normalization transforms applied to a freshly read set of links.
package links
