// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package links

import (
	"math/rand"
	"time"
)

// NewRand returns a generator for Sample. A zero seed means "seed from the
// clock", which is what production callers want.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)) //nolint:gosec
}
