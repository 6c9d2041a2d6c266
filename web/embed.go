// Package web holds the site's HTML templates and static assets, embedded into
// the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static
var static embed.FS

func Templates() fs.FS {
	return templates
}

// Static returns the asset tree rooted at static/, so "css/site.css" resolves
// to web/static/css/site.css.
func Static() fs.FS {
	sub, err := fs.Sub(static, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
