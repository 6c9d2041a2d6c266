package pages

import (
	"html/template"
	"io/fs"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func templateFuncs() template.FuncMap {
	title := cases.Title(language.English)

	return template.FuncMap{
		"title": title.String,
		"year":  func() int { return time.Now().Year() },
	}
}

// ParseTemplates loads every *.html file in fsys. Templates are addressed by
// file name, e.g. "landing.html".
func ParseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").Funcs(templateFuncs()).ParseFS(fsys, "templates/*.html")
}
