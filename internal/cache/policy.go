// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"fmt"
	"strings"
)

// CorruptPolicy decides what Get does with an entry it cannot parse.
type CorruptPolicy string

const (
	// CorruptEmpty returns an empty list and leaves the entry in place.
	CorruptEmpty CorruptPolicy = "empty"
	// CorruptRecompute treats the entry as a miss and overwrites it.
	CorruptRecompute CorruptPolicy = "recompute"
)

// CorruptPolicies lists the accepted policy names.
var CorruptPolicies = []string{string(CorruptEmpty), string(CorruptRecompute)}

// ParseCorruptPolicy converts a name to a CorruptPolicy. Empty means
// CorruptEmpty.
func ParseCorruptPolicy(s string) (CorruptPolicy, error) {
	switch CorruptPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", CorruptEmpty:
		return CorruptEmpty, nil
	case CorruptRecompute:
		return CorruptRecompute, nil
	default:
		return "", fmt.Errorf("unknown corrupt entry policy %q, must be one of %v", s, CorruptPolicies)
	}
}
