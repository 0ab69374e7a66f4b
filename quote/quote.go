package quote

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Mode selects which of the two workflows is active. Switching mode clears
// every piece of derived result state but leaves the vehicle fields alone.
type Mode string

const (
	ModeNone     Mode = ""
	ModeQuote    Mode = "quote"
	ModeSchedule Mode = "schedule"
)

// ParseMode maps a route parameter to a Mode, defaulting to ModeNone.
func ParseMode(s string) Mode {
	switch s {
	case "quote":
		return ModeQuote
	case "schedule":
		return ModeSchedule
	}
	return ModeNone
}

// Shop categories returned by the pricing endpoint.
const (
	TypeDealer = "Dealer"
	TypeIndy   = "Indy"
)

// VehicleInput holds the raw form fields as entered. No normalization
// happens here; fields are trimmed only when a query is built.
type VehicleInput struct {
	Year    string
	Make    string
	Model   string
	Mileage string
	ZipCode string
}

// Quote is a single shop quote as returned by the pricing endpoint.
type Quote struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Type     string  `json:"type"`
	Distance float64 `json:"distance"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
}

// WithID decorates a quote with its ordinal identifier ("quote-0",
// "quote-1", ...). The identifier correlates a map pin with its list entry
// within a single fetch and nothing more: it is assigned from response array
// position and is invalidated by the next fetch, so it must never be used as
// an entity identity or cache key.
type WithID struct {
	ID string
	Quote
}

// ScheduleItem is an opaque passthrough from the schedule endpoint.
type ScheduleItem struct {
	ServiceTask   string `json:"service_task"`
	IntervalMiles int    `json:"interval_miles"`
	Description   string `json:"description"`
	Severity      string `json:"severity"`
}

// MapCenter is the user's reference location on the map.
type MapCenter struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Coordinator owns the quote/schedule retrieval flow: it translates the
// entered vehicle details plus the selected mode into exactly one outbound
// query per submit, then reconciles the response into renderable state.
//
// All methods are meant to be driven from a single goroutine of event
// handlers; a second Submit racing the first is last-write-wins.
type Coordinator struct {
	client *Client

	mode    Mode
	input   VehicleInput
	service string

	quotes   []Quote
	schedule []ScheduleItem
	center   *MapCenter
	activeID string
	loading  bool
	errMsg   string
}

// NewCoordinator creates a coordinator talking to the given API client.
func NewCoordinator(client *Client) *Coordinator {
	return &Coordinator{client: client}
}

// SelectMode switches the active workflow and clears all derived result
// state. Vehicle fields persist across mode switches. No network call.
func (s *Coordinator) SelectMode(next Mode) {
	s.mode = next
	s.errMsg = ""
	s.quotes = nil
	s.schedule = nil
	s.center = nil
	s.activeID = ""
}

// UpdateField assigns a single form field. Unknown field names are ignored;
// the widgets themselves enforce numeric bounds and required-ness.
func (s *Coordinator) UpdateField(field, value string) {
	switch field {
	case "year":
		s.input.Year = value
	case "make":
		s.input.Make = value
	case "model":
		s.input.Model = value
	case "mileage":
		s.input.Mileage = value
	case "zip_code":
		s.input.ZipCode = value
	case "service":
		s.service = value
	}
}

// Submit issues the single outbound query for the active mode and
// reconciles the result. A no-op when no mode is selected. Any failure is
// mapped to a user-facing message; the attempt's results are discarded
// whole.
func (s *Coordinator) Submit(ctx context.Context) {
	if s.mode == ModeNone {
		return
	}

	s.loading = true
	s.errMsg = ""
	defer func() { s.loading = false }()

	switch s.mode {
	case ModeQuote:
		res, err := s.client.Quotes(ctx, QuotesQuery{
			Service: strings.TrimSpace(s.service),
			Make:    strings.TrimSpace(s.input.Make),
			Model:   strings.TrimSpace(s.input.Model),
			Year:    strings.TrimSpace(s.input.Year),
			ZipCode: strings.TrimSpace(s.input.ZipCode),
		})
		if err != nil {
			s.errMsg = userMessage(err)
			return
		}
		s.quotes = res.Quotes
		if s.quotes == nil {
			s.quotes = []Quote{}
		}
		if res.Center != nil && res.Center.Lat != 0 && res.Center.Lng != 0 {
			s.center = res.Center
		}
		s.schedule = nil
	case ModeSchedule:
		items, err := s.client.Schedule(ctx, ScheduleQuery{
			Make:    strings.TrimSpace(s.input.Make),
			Model:   strings.TrimSpace(s.input.Model),
			Year:    strings.TrimSpace(s.input.Year),
			Mileage: strings.TrimSpace(s.input.Mileage),
		})
		if err != nil {
			s.errMsg = userMessage(err)
			return
		}
		if items == nil {
			items = []ScheduleItem{}
		}
		s.schedule = items
		s.quotes = nil
	}
}

// SetActiveQuote marks the quote emphasized in both the map and list views.
// Last write wins; pass the empty string to clear.
func (s *Coordinator) SetActiveQuote(id string) {
	s.activeID = id
}

// ---- State accessors ----

func (s *Coordinator) Mode() Mode               { return s.mode }
func (s *Coordinator) Input() VehicleInput      { return s.input }
func (s *Coordinator) Service() string          { return s.service }
func (s *Coordinator) Quotes() []Quote          { return s.quotes }
func (s *Coordinator) Schedule() []ScheduleItem { return s.schedule }
func (s *Coordinator) Center() *MapCenter       { return s.center }
func (s *Coordinator) ActiveQuoteID() string    { return s.activeID }
func (s *Coordinator) Loading() bool            { return s.loading }
func (s *Coordinator) Err() string              { return s.errMsg }

// ---- Derived views ----
//
// These are recomputed from the source quote list on every call rather than
// kept in incrementally-mutated fields, so a fresh fetch can never leave a
// stale partition behind.

// QuotesWithID returns the quotes decorated with ordinal identifiers in
// response order.
func (s *Coordinator) QuotesWithID() []WithID {
	out := make([]WithID, len(s.quotes))
	for i, q := range s.quotes {
		out[i] = WithID{ID: "quote-" + strconv.Itoa(i), Quote: q}
	}
	return out
}

// Dealers returns the dealer subset, source order preserved.
func (s *Coordinator) Dealers() []WithID {
	return s.partition(TypeDealer)
}

// Indys returns the independent-shop subset, source order preserved.
func (s *Coordinator) Indys() []WithID {
	return s.partition(TypeIndy)
}

func (s *Coordinator) partition(shopType string) []WithID {
	var out []WithID
	for _, q := range s.QuotesWithID() {
		if q.Type == shopType {
			out = append(out, q)
		}
	}
	return out
}

// DealerAverage is the arithmetic mean of dealer prices rounded to the
// nearest dollar, or 0 when there are no dealer quotes.
func (s *Coordinator) DealerAverage() int {
	dealers := s.Dealers()
	if len(dealers) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range dealers {
		sum += d.Price
	}
	return int(math.Round(sum / float64(len(dealers))))
}

// Savings is what an independent shop saves over the dealer average, never
// negative.
func Savings(dealerAverage int, price float64) int {
	saved := float64(dealerAverage) - price
	if saved <= 0 {
		return 0
	}
	return int(math.Round(saved))
}

// ---- Error mapping ----

// User-facing messages shown beneath the form.
const (
	msgQuotesFailed   = "Unable to fetch quotes. Try again."
	msgScheduleFailed = "Unable to load schedule. Try again."
	msgUnknown        = "Something went wrong."
)

// RequestError is a non-success HTTP status from the API. The message is
// static and mode-specific; no structured error body is parsed.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// UnknownError is any other failure during the request/parse sequence. The
// cause is kept for logs but never surfaced to the user.
type UnknownError struct {
	Cause error
}

func (e *UnknownError) Error() string { return msgUnknown }
func (e *UnknownError) Unwrap() error { return e.Cause }

func userMessage(err error) string {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Message
	}
	return msgUnknown
}
