// Package ui bundles the templates and static assets into the binary so the
// server does not depend on its working directory.
package ui

import "embed"

//go:embed templates static
var Files embed.FS
