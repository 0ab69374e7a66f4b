// Package handlers drives the quote/schedule coordinator from HTTP
// requests and renders the resulting state.
package handlers

import (
	"sync"

	"github.com/fairfix/site/quote"
)

// The coordinator mirrors what a visitor sees on the page. Handlers are
// serialized through the mutex; concurrent submits are last-write-wins.
var (
	mu    sync.Mutex
	coord *quote.Coordinator
)

// Setup wires the shared coordinator to the quote API client. Must be
// called before any handler runs.
func Setup(client *quote.Client) {
	coord = quote.NewCoordinator(client)
}
