// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package web holds the single-page front end served at /.
package web

import _ "embed"

//go:embed index.html
var Index []byte
