// Package appfs exposes the repository's embedded static assets.
package appfs

import "embed"

//go:embed migrations assets
var FS embed.FS
