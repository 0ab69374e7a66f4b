package ui

import (
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/components"
	. "maragu.dev/gomponents/html"

	"github.com/fairfix/site/config"
)

// ---- Page Layout ----

func Page(title string, content []g.Node) g.Node {
	return components.HTML5(components.HTML5Props{
		Title:    title,
		Language: "en",
		Head: []g.Node{
			Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
			Link(
				Rel("stylesheet"),
				Href(config.TailwindCSSURL),
			),
			// Leaflet CSS for map functionality
			Link(
				Rel("stylesheet"),
				Href(config.LeafletCSSURL),
			),
			Script(
				Type("text/javascript"),
				Src(config.HTMXURL),
				Defer(),
			),
			// Leaflet JS for map functionality
			Script(
				Type("text/javascript"),
				Src(config.LeafletJSURL),
				Defer(),
			),
			// Custom map functionality
			Script(
				Type("text/javascript"),
				Src("/js/map.js"),
				Defer(),
			),
		},
		Body: []g.Node{
			Div(
				Class("container mx-auto px-4 py-8 max-w-3xl"),
				pageHeader("FairFix"),
				P(
					Class("text-gray-600 mb-8"),
					g.Text("Compare repair quotes and keep up with your maintenance schedule."),
				),
				g.Group(content),
			),
		},
	})
}

func pageHeader(text string) g.Node {
	return H1(Class("text-4xl font-bold mb-2"), g.Text(text))
}
