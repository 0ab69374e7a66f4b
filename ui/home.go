package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/fairfix/site/quote"
)

// HomePage is the full page: mode toggle, vehicle form, and results.
func HomePage(coord *quote.Coordinator) g.Node {
	return Page("FairFix - Honest Repair Quotes", []g.Node{
		ModeSection(coord),
	})
}

// ModeSection wraps everything that changes when the workflow changes.
func ModeSection(coord *quote.Coordinator) g.Node {
	return Div(
		ID("mode-section"),
		modeToggle(coord.Mode()),
		SearchForm(coord),
		Results(coord),
	)
}

func modeToggle(active quote.Mode) g.Node {
	return Div(
		Class("flex space-x-2 mb-4"),
		modeButton("Get Repair Quotes", quote.ModeQuote, active),
		modeButton("Maintenance Schedule", quote.ModeSchedule, active),
	)
}

func modeButton(label string, mode, active quote.Mode) g.Node {
	return Button(
		Type("button"),
		Class(getButtonClass(buttonSecondary, mode == active)),
		hx.Get("/mode/"+string(mode)),
		hx.Target("#mode-section"),
		hx.Swap("outerHTML"),
		g.Text(label),
	)
}

// Results dispatches on the coordinator's state: an error banner, quote
// results, a schedule table, or nothing at all before the first search.
func Results(coord *quote.Coordinator) g.Node {
	content := []g.Node{}

	if msg := coord.Err(); msg != "" {
		content = append(content, errorBanner(msg))
	}

	switch {
	case coord.Err() != "":
		// Banner only; the failed attempt's results were discarded.
	case coord.Mode() == quote.ModeQuote && coord.Quotes() != nil:
		content = append(content, quoteResults(coord))
	case coord.Mode() == quote.ModeSchedule && coord.Schedule() != nil:
		content = append(content, scheduleResults(coord.Schedule()))
	}

	return Div(
		ID("results"),
		Class("mt-6"),
		g.Group(content),
	)
}
