package ui

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/dustin/go-humanize"

	"github.com/fairfix/site/quote"
)

func scheduleResults(items []quote.ScheduleItem) g.Node {
	if len(items) == 0 {
		return Div(
			Class("p-4 text-gray-500"),
			g.Text("Nothing is due soon. You're all caught up."),
		)
	}

	rows := []g.Node{}
	for _, item := range items {
		rows = append(rows, Tr(
			Class("border-t"),
			Td(Class("p-2 font-bold"), g.Text(item.ServiceTask)),
			Td(Class("p-2"), g.Textf("%s mi", humanize.Comma(int64(item.IntervalMiles)))),
			Td(Class("p-2 text-gray-600"), g.Text(item.Description)),
			Td(Class("p-2"), severityBadge(item.Severity)),
		))
	}

	return Div(
		sectionHeader("Upcoming Maintenance"),
		Table(
			Class("w-full text-left border rounded-lg"),
			THead(
				Tr(
					Class("bg-gray-50"),
					Th(Class("p-2"), g.Text("Service")),
					Th(Class("p-2"), g.Text("Due At")),
					Th(Class("p-2"), g.Text("Details")),
					Th(Class("p-2"), g.Text("Severity")),
				),
			),
			TBody(g.Group(rows)),
		),
	)
}

func severityBadge(severity string) g.Node {
	class := "text-xs px-2 py-1 rounded "
	switch severity {
	case "Critical":
		class += "bg-red-100 text-red-800"
	case "Major":
		class += "bg-yellow-100 text-yellow-800"
	default:
		class += "bg-gray-100 text-gray-800"
	}
	return Span(Class(class), g.Text(severity))
}
