package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/fairfix/site/config"
	"github.com/fairfix/site/quote"
)

// quoteMap renders the shop map. Quote coordinates travel to the browser as
// hidden data elements that map.js reads when it builds the Leaflet layer.
func quoteMap(coord *quote.Coordinator) g.Node {
	if config.MapTilerAPIKey == "" {
		return Div(
			Class("h-24 w-full rounded border bg-gray-50 flex items-center justify-center text-gray-500"),
			g.Text("Map unavailable. Set MAPTILER_API_KEY to see shops near you."),
		)
	}

	return Div(
		ID("map-view"),
		Class("w-full mb-4"),
		Div(
			Class("h-96 w-full rounded border bg-gray-50"),
			Div(
				ID("map-container"),
				Class("h-full w-full"),
				Style("border-radius: inherit; overflow: hidden;"),
				g.Attr("data-key", config.MapTilerAPIKey),
			),
			// Hidden data container read by map.js
			Div(
				ID("map-data"),
				Class("hidden"),
				g.Attr("data-active", coord.ActiveQuoteID()),
				mapCenterElement(coord.Center()),
				g.Group(quoteDataElements(coord.QuotesWithID())),
			),
			// Initialize map after all elements are created
			Script(
				Type("text/javascript"),
				g.Raw("initMap();"),
			),
		),
	)
}

// quoteDataElements creates hidden data elements for each quote with
// coordinates.
func quoteDataElements(quotes []quote.WithID) []g.Node {
	var elements []g.Node
	for _, q := range quotes {
		elements = append(elements,
			Div(
				Class("hidden"),
				g.Attr("data-quote-id", q.ID),
				g.Attr("data-lat", fmt.Sprintf("%f", q.Lat)),
				g.Attr("data-lon", fmt.Sprintf("%f", q.Lng)),
				g.Attr("data-name", q.Name),
				g.Attr("data-price", fmt.Sprintf("%.0f", q.Price)),
				g.Attr("data-type", q.Type),
			),
		)
	}
	return elements
}

func mapCenterElement(center *quote.MapCenter) g.Node {
	if center == nil {
		return g.Text("")
	}
	return Div(
		Class("hidden"),
		ID("map-center"),
		g.Attr("data-lat", fmt.Sprintf("%f", center.Lat)),
		g.Attr("data-lon", fmt.Sprintf("%f", center.Lng)),
	)
}
