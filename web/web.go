// Package web embeds the single-page client served at the site root.
package web

import (
	"embed"
	"io/fs"
)

//go:embed static
var static embed.FS

// Static returns the client files rooted at the static directory.
func Static() (fs.FS, error) {
	return fs.Sub(static, "static")
}
