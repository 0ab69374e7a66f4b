package ui

import (
	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/fairfix/site/quote"
)

// Services offered in the quote form selector.
var serviceOptions = []string{
	"Oil Change",
	"Brake Pad Replacement",
	"Battery Replacement",
	"Tire Rotation",
	"Spark Plug Service",
}

// ---- Form Components ----

func formGroup(labelText string, fieldID string, input g.Node) g.Node {
	return Div(
		Class("space-y-2"),
		Label(For(fieldID), Class("block"), g.Text(labelText)),
		input,
	)
}

func textInput(id, name, value, placeholder string) g.Node {
	return Input(
		Type("text"),
		ID(id),
		Name(name),
		Value(value),
		Placeholder(placeholder),
		Required(),
		Class("w-full p-2 border rounded"),
	)
}

func numberInput(id, name, value, min, max string) g.Node {
	return Input(
		Type("number"),
		ID(id),
		Name(name),
		Value(value),
		Min(min),
		Max(max),
		Required(),
		Class("w-full p-2 border rounded"),
	)
}

func serviceSelect(selected string) g.Node {
	nodes := []g.Node{
		ID("service"),
		Name("service"),
		Required(),
		Class("w-full p-2 border rounded"),
	}
	for _, svc := range serviceOptions {
		nodes = append(nodes, Option(Value(svc), g.Text(svc), g.If(svc == selected, Selected())))
	}
	return Select(nodes...)
}

// SearchForm renders the vehicle form for the active mode. The vehicle
// fields keep their values when the user flips between modes.
func SearchForm(coord *quote.Coordinator) g.Node {
	if coord.Mode() == quote.ModeNone {
		return Div(
			ID("search-form"),
			Class("p-4 text-gray-500"),
			g.Text("Pick what you need above to get started."),
		)
	}

	input := coord.Input()

	fields := []g.Node{
		formGroup("Year", "year", numberInput("year", "year", input.Year, "1980", "2027")),
		formGroup("Make", "make", textInput("make", "make", input.Make, "Toyota")),
		formGroup("Model", "model", textInput("model", "model", input.Model, "Camry")),
	}

	var action, submitLabel string
	switch coord.Mode() {
	case quote.ModeQuote:
		action = "/search/quotes"
		submitLabel = "Get Quotes"
		fields = append([]g.Node{
			formGroup("Service", "service", serviceSelect(coord.Service())),
		}, fields...)
		fields = append(fields,
			formGroup("Zip Code", "zip_code", textInput("zip_code", "zip_code", input.ZipCode, "94103")),
		)
	case quote.ModeSchedule:
		action = "/search/schedule"
		submitLabel = "View Schedule"
		fields = append(fields,
			formGroup("Current Mileage", "mileage", numberInput("mileage", "mileage", input.Mileage, "0", "500000")),
		)
	}

	return Form(
		ID("search-form"),
		Class("space-y-4 p-4 bg-gray-50 border border-gray-200 rounded-lg"),
		hx.Post(action),
		hx.Target("#results"),
		hx.Swap("outerHTML"),
		hx.Indicator("#loading"),
		g.Group(fields),
		loadingIndicator(),
		Button(
			Type("submit"),
			Class(getButtonClass(buttonPrimary, false)),
			g.Text(submitLabel),
		),
	)
}
