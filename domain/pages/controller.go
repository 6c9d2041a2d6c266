package pages

import (
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/akeren/friendlyfonts/config/router"
	"github.com/akeren/friendlyfonts/internal/log"
)

const pageRequestsPerMinute = 120

// PageData is passed to every template.
type PageData struct {
	Site   *Content
	Path   string
	Glyphs []GlyphGroup
}

// Assets bundles what the page controller renders and serves.
type Assets struct {
	Templates fs.FS
	Static    fs.FS
}

// NewPageController mounts the site pages at / and the static assets at
// /static. It panics when the embedded templates or copy fail to load, since
// the binary cannot serve anything useful without them.
func NewPageController(logger *log.Logger, assets Assets) *router.RESTController {
	content, err := LoadContent()
	if err != nil {
		panic(fmt.Sprintf("pages: %v", err))
	}

	tmpl, err := ParseTemplates(assets.Templates)
	if err != nil {
		panic(fmt.Sprintf("pages: %v", err))
	}

	return router.NewRESTController(
		"PageController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.SetHTMLTemplate(tmpl)
			limiter := rs.NewRateLimiter(pageRequestsPerMinute, time.Minute)

			page := func(name string, glyphs []GlyphGroup) router.PageFunction {
				return func(ctx *router.RequestContext) *router.PageResult {
					return router.PageOK(name, PageData{Site: content, Path: ctx.Request.URL.Path, Glyphs: glyphs})
				}
			}

			rs.AddPageHandler(c, limiter, "", page("landing.html", nil))
			rs.AddPageHandler(c, limiter, "pricing", page("pricing.html", nil))
			rs.AddPageHandler(c, limiter, "generate", page("generate.html", nil))
			rs.AddPageHandler(c, limiter, "handwriting-template", page("handwriting-template.html", TemplateGlyphs()))
			rs.AddStaticHandler(c, limiter, "static/*filepath", http.FS(assets.Static))

			logger.Info("Site pages mounted", "templates", len(tmpl.Templates()))
		},
	)
}
