package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"github.com/fairfix/site/quote"
)

func quoteResults(coord *quote.Coordinator) g.Node {
	if len(coord.Quotes()) == 0 {
		return Div(
			Class("p-4 text-gray-500"),
			g.Text("No quotes available for that search."),
		)
	}

	return Div(
		quoteMap(coord),
		QuoteList(coord),
	)
}

// QuoteList renders the dealer and independent-shop quote cards. It is the
// swap target for pin and card highlighting.
func QuoteList(coord *quote.Coordinator) g.Node {
	dealers := coord.Dealers()
	indys := coord.Indys()
	dealerAverage := coord.DealerAverage()

	content := []g.Node{}

	if len(dealers) > 0 {
		cards := []g.Node{}
		for _, q := range dealers {
			cards = append(cards, quoteCard(q, coord.ActiveQuoteID(), nil))
		}
		content = append(content,
			sectionHeader("Dealerships"),
			P(
				Class("text-gray-600 mb-2"),
				g.Textf("Dealer average: $%d", dealerAverage),
			),
			Div(Class("space-y-2 mb-6"), g.Group(cards)),
		)
	}

	if len(indys) > 0 {
		cards := []g.Node{}
		for _, q := range indys {
			savings := quote.Savings(dealerAverage, q.Price)
			cards = append(cards, quoteCard(q, coord.ActiveQuoteID(), savingsBadge(savings)))
		}
		content = append(content,
			sectionHeader("Independent Shops"),
			Div(Class("space-y-2"), g.Group(cards)),
		)
	}

	return Div(
		ID("quote-list"),
		Class("mt-4"),
		// Leaving the list clears the emphasis
		hx.Get("/highlight-clear"),
		hx.Trigger("mouseleave"),
		hx.Target("#quote-list"),
		hx.Swap("outerHTML"),
		g.Group(content),
	)
}

func quoteCard(q quote.WithID, activeID string, badge g.Node) g.Node {
	cardClass := "p-4 border rounded-lg cursor-pointer hover:bg-gray-50"
	if q.ID == activeID {
		cardClass += " ring-2 ring-blue-500 bg-blue-50"
	}

	nodes := []g.Node{
		ID(q.ID),
		Class(cardClass),
		hx.Get("/highlight/" + q.ID),
		hx.Trigger("mouseenter"),
		hx.Target("#quote-list"),
		hx.Swap("outerHTML"),
		Div(
			Class("flex justify-between items-center"),
			Div(
				P(Class("font-bold"), g.Text(q.Name)),
				P(
					Class("text-sm text-gray-500"),
					g.Textf("%.1f miles away", q.Distance),
				),
			),
			Div(
				Class("text-right"),
				P(Class("text-xl font-bold"), g.Textf("$%.0f", q.Price)),
				typeBadge(q.Type),
			),
		),
	}
	if badge != nil {
		nodes = append(nodes, badge)
	}
	return Div(nodes...)
}

func typeBadge(shopType string) g.Node {
	class := "text-xs px-2 py-1 rounded "
	if shopType == quote.TypeDealer {
		class += "bg-blue-100 text-blue-800"
	} else {
		class += "bg-green-100 text-green-800"
	}
	return Span(Class(class), g.Text(shopType))
}

func savingsBadge(savings int) g.Node {
	if savings <= 0 {
		return nil
	}
	return Div(
		Class("mt-2"),
		Span(
			Class("text-sm font-bold text-green-700 bg-green-100 px-2 py-1 rounded"),
			g.Text(fmt.Sprintf("Save $%d vs. dealer average", savings)),
		),
	)
}
