package web

import _ "embed"

// IndexHTML is the single dashboard page.
//
//go:embed index.html
var IndexHTML []byte
