package ui

import (
	"fmt"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func ErrorPage(code int, message string) g.Node {
	return Page(
		fmt.Sprintf("Error %d", code),
		[]g.Node{
			H2(Class("text-2xl font-bold mb-4"), g.Textf("Error %d", code)),
			P(g.Text(message)),
		},
	)
}
