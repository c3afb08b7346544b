// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

// Package output renders link lists as HTML markup, text tables, JSON or
// YAML.
package output
