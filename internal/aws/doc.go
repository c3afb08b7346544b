// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package aws contains AWS helpers, including an S3 backed cache entry store
// for deployments that share one cache across hosts.
package aws
