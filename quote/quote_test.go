package quote_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fairfix/site/quote"
)

func newCoordinator(t *testing.T, handler http.HandlerFunc) *quote.Coordinator {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return quote.NewCoordinator(quote.NewClient(quote.WithBaseURL(srv.URL)))
}

const sampleQuotesBody = `{
	"quotes": [
		{"name": "Acme Dealer", "price": 200, "type": "Dealer", "distance": 3, "lat": 1, "lng": 1},
		{"name": "Joe's Shop", "price": 150, "type": "Indy", "distance": 5, "lat": 2, "lng": 2}
	],
	"center": {"lat": 37.7, "lng": -122.4}
}`

func TestSubmit_NoModeIsNoOp(t *testing.T) {
	calls := 0
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	c.UpdateField("make", "BMW")
	c.UpdateField("zip_code", "94105")
	c.Submit(context.Background())

	assert.Equal(t, 0, calls, "no network call while mode is none")
	assert.Nil(t, c.Quotes())
	assert.Nil(t, c.Schedule())
	assert.Empty(t, c.Err())
	assert.False(t, c.Loading())
}

func TestSelectMode_ClearsDerivedState(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleQuotesBody)
	})

	c.UpdateField("make", "BMW")
	c.SelectMode(quote.ModeQuote)
	c.Submit(context.Background())
	c.SetActiveQuote("quote-1")

	require.Len(t, c.Quotes(), 2)
	require.NotNil(t, c.Center())

	c.SelectMode(quote.ModeSchedule)

	assert.Nil(t, c.Quotes())
	assert.Nil(t, c.Schedule())
	assert.Nil(t, c.Center())
	assert.Empty(t, c.ActiveQuoteID())
	// Vehicle fields survive the switch.
	assert.Equal(t, "BMW", c.Input().Make)
}

func TestSubmit_TrimsFields(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Oil Change", q.Get("service_name"))
		assert.Equal(t, "BMW", q.Get("make"))
		assert.Equal(t, "94105", q.Get("zip_code"))
		fmt.Fprint(w, `{"quotes":[]}`)
	})

	c.SelectMode(quote.ModeQuote)
	c.UpdateField("service", "  Oil Change ")
	c.UpdateField("make", " BMW ")
	c.UpdateField("zip_code", "94105 ")
	c.Submit(context.Background())

	assert.Empty(t, c.Err())
}

func TestSubmit_QuoteErrorLeavesQuotesUnset(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	c.SelectMode(quote.ModeQuote)
	c.Submit(context.Background())

	assert.Equal(t, "Unable to fetch quotes. Try again.", c.Err())
	assert.Nil(t, c.Quotes())
	assert.False(t, c.Loading(), "loading flag cleared on the failure path")
}

func TestSubmit_ScheduleError(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c.SelectMode(quote.ModeSchedule)
	c.Submit(context.Background())

	assert.Equal(t, "Unable to load schedule. Try again.", c.Err())
	assert.Nil(t, c.Schedule())
}

func TestSubmit_ScheduleNullBodyIsEmpty(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `null`)
	})

	c.SelectMode(quote.ModeSchedule)
	c.Submit(context.Background())

	require.NotNil(t, c.Schedule())
	assert.Empty(t, c.Schedule())
	assert.Empty(t, c.Err())
}

func TestSubmit_SuccessClearsPriorError(t *testing.T) {
	fail := true
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, sampleQuotesBody)
	})

	c.SelectMode(quote.ModeQuote)
	c.Submit(context.Background())
	require.NotEmpty(t, c.Err())

	fail = false
	c.Submit(context.Background())
	assert.Empty(t, c.Err())
	assert.Len(t, c.Quotes(), 2)
}

func TestSubmit_ModesAreMutuallyExclusive(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/quotes":
			fmt.Fprint(w, sampleQuotesBody)
		case "/schedule":
			fmt.Fprint(w, `[{"service_task":"Oil Service","interval_miles":50000,"description":"","severity":"Routine"}]`)
		}
	})

	c.SelectMode(quote.ModeQuote)
	c.Submit(context.Background())
	require.Len(t, c.Quotes(), 2)
	require.Nil(t, c.Schedule())

	c.SelectMode(quote.ModeSchedule)
	c.Submit(context.Background())
	require.Len(t, c.Schedule(), 1)
	require.Nil(t, c.Quotes())
}

func TestSubmit_CenterRequiresBothCoordinates(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"both present", `{"quotes":[],"center":{"lat":37.7,"lng":-122.4}}`, true},
		{"missing lng", `{"quotes":[],"center":{"lat":37.7}}`, false},
		{"missing lat", `{"quotes":[],"center":{"lng":-122.4}}`, false},
		{"no center", `{"quotes":[]}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			})
			c.SelectMode(quote.ModeQuote)
			c.Submit(context.Background())

			if tt.want {
				assert.NotNil(t, c.Center())
			} else {
				assert.Nil(t, c.Center())
			}
		})
	}
}

func TestQuotesWithID_OrdinalsFollowResponseOrder(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleQuotesBody)
	})

	c.SelectMode(quote.ModeQuote)
	c.Submit(context.Background())

	ids := c.QuotesWithID()
	require.Len(t, ids, 2)
	assert.Equal(t, "quote-0", ids[0].ID)
	assert.Equal(t, "Acme Dealer", ids[0].Name)
	assert.Equal(t, "quote-1", ids[1].ID)
	assert.Equal(t, "Joe's Shop", ids[1].Name)

	// A refetch reassigns identifiers from scratch.
	c.Submit(context.Background())
	again := c.QuotesWithID()
	require.Len(t, again, 2)
	assert.Equal(t, "quote-0", again[0].ID)
}

func TestDealerAverage(t *testing.T) {
	tests := []struct {
		name   string
		quotes string
		want   int
	}{
		{
			name:   "no dealers",
			quotes: `{"quotes":[{"name":"A","price":100,"type":"Indy"}]}`,
			want:   0,
		},
		{
			name:   "two dealers",
			quotes: `{"quotes":[{"name":"A","price":1000,"type":"Dealer"},{"name":"B","price":1200,"type":"Dealer"}]}`,
			want:   1100,
		},
		{
			name:   "rounds to nearest",
			quotes: `{"quotes":[{"name":"A","price":100,"type":"Dealer"},{"name":"B","price":101,"type":"Dealer"}]}`,
			want:   101,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.quotes)
			})
			c.SelectMode(quote.ModeQuote)
			c.Submit(context.Background())
			assert.Equal(t, tt.want, c.DealerAverage())
		})
	}
}

func TestSavings_NeverNegative(t *testing.T) {
	assert.Equal(t, 200, quote.Savings(1100, 900))
	assert.Equal(t, 0, quote.Savings(1100, 1200))
	assert.Equal(t, 0, quote.Savings(1100, 1100))
	assert.Equal(t, 0, quote.Savings(0, 50))
}

func TestSetActiveQuote_LastWriteWins(t *testing.T) {
	c := quote.NewCoordinator(quote.NewClient())

	c.SetActiveQuote("quote-0")
	c.SetActiveQuote("quote-3")
	assert.Equal(t, "quote-3", c.ActiveQuoteID())

	c.SetActiveQuote("")
	assert.Empty(t, c.ActiveQuoteID())
}

func TestScenario_OilChangeQuoteFlow(t *testing.T) {
	c := newCoordinator(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "Oil Change", q.Get("service_name"))
		require.Equal(t, "BMW", q.Get("make"))
		require.Equal(t, "X5", q.Get("model"))
		require.Equal(t, "2020", q.Get("year"))
		require.Equal(t, "94105", q.Get("zip_code"))
		fmt.Fprint(w, sampleQuotesBody)
	})

	c.SelectMode(quote.ModeQuote)
	c.UpdateField("make", "BMW")
	c.UpdateField("model", "X5")
	c.UpdateField("year", "2020")
	c.UpdateField("zip_code", "94105")
	c.UpdateField("service", "Oil Change")
	c.Submit(context.Background())

	require.Empty(t, c.Err())

	dealers := c.Dealers()
	require.Len(t, dealers, 1)
	assert.Equal(t, 200.0, dealers[0].Price)

	indys := c.Indys()
	require.Len(t, indys, 1)
	assert.Equal(t, 150.0, indys[0].Price)

	avg := c.DealerAverage()
	assert.Equal(t, 200, avg)
	assert.Equal(t, 50, quote.Savings(avg, indys[0].Price))

	require.NotNil(t, c.Center())
	assert.Equal(t, 37.7, c.Center().Lat)
	assert.Equal(t, -122.4, c.Center().Lng)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, quote.ModeQuote, quote.ParseMode("quote"))
	assert.Equal(t, quote.ModeSchedule, quote.ParseMode("schedule"))
	assert.Equal(t, quote.ModeNone, quote.ParseMode(""))
	assert.Equal(t, quote.ModeNone, quote.ParseMode("bogus"))
}
