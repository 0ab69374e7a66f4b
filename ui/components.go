package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ---- Layout Components ----

func sectionHeader(title string) g.Node {
	return H2(Class("text-2xl font-bold mb-4"), g.Text(title))
}

// ---- Button Components ----

type ButtonVariant string

const (
	buttonPrimary   ButtonVariant = "primary"
	buttonSecondary ButtonVariant = "secondary"
)

func getButtonClass(variant ButtonVariant, selected bool) string {
	baseClass := "px-4 py-2 rounded inline-block "
	switch variant {
	case buttonPrimary:
		return baseClass + "bg-blue-500 text-white hover:bg-blue-600"
	case buttonSecondary:
		if selected {
			return baseClass + "bg-blue-500 text-white"
		}
		return baseClass + "bg-gray-200 text-gray-800 hover:bg-gray-300"
	}
	return baseClass
}

func errorBanner(msg string) g.Node {
	if msg == "" {
		return g.Text("")
	}
	return Div(
		Class("p-4 mb-4 bg-red-50 border border-red-200 text-red-700 rounded"),
		g.Attr("role", "alert"),
		g.Text(msg),
	)
}

func loadingIndicator() g.Node {
	return Div(
		Class("htmx-indicator text-gray-500 py-2"),
		ID("loading"),
		g.Text("Loading..."),
	)
}
