// Package assets embeds the stylesheet and page script served under /static.
package assets

import "embed"

//go:embed *.css *.js
var FS embed.FS
