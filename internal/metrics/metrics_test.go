package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/geotreasure/internal/event"
)

func TestEventMetricsCollector(t *testing.T) {
	bus := event.NewMemoryBus()
	require.NoError(t, NewEventMetricsCollector().Register(bus))
	ctx := context.Background()

	discoveries := testutil.ToFloat64(DiscoveriesTotal.WithLabelValues("legendary"))
	advances := testutil.ToFloat64(RankAdvancesTotal.WithLabelValues("hunter"))
	profiles := testutil.ToFloat64(ProfilesRegistered)
	published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ItemDiscovered)))

	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.ItemDiscovered,
		Payload: event.ItemDiscoveredPayloadV1{ItemID: "t1", Finder: "A", Rarity: "legendary"},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.RankAdvanced,
		Payload: map[string]interface{}{"owner": "A", "old_rank": "explorer", "new_rank": "hunter"},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{Type: event.ProfileCreated}))

	assert.Equal(t, discoveries+1, testutil.ToFloat64(DiscoveriesTotal.WithLabelValues("legendary")))
	assert.Equal(t, advances+1, testutil.ToFloat64(RankAdvancesTotal.WithLabelValues("hunter")))
	assert.Equal(t, profiles+1, testutil.ToFloat64(ProfilesRegistered))
	assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ItemDiscovered))))
}

func TestEventMetricsCollector_BadPayloadIgnored(t *testing.T) {
	before := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ItemDiscovered)))

	err := NewEventMetricsCollector().HandleEvent(context.Background(), event.Event{
		Type:    event.ItemDiscovered,
		Payload: "not a payload",
	})
	assert.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ItemDiscovered))))
}

func TestMiddleware_LabelsRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/v1/items/{itemID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/items/{itemID}", "404"))

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/items/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, before+3, testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/items/{itemID}", "404")))
	assert.Zero(t, testutil.ToFloat64(HTTPRequestsInFlight))
}

func TestRoutePattern_NoRouteContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/anything", nil)
	assert.Equal(t, PathUnmatched, routePattern(req))
}

func TestInstrumentBus_CountsHandlerErrors(t *testing.T) {
	inner := event.NewMemoryBus()
	bus := InstrumentBus(inner)
	ctx := context.Background()

	fail := true
	bus.Subscribe(event.ProfileCreated, func(context.Context, event.Event) error {
		if fail {
			return assert.AnError
		}
		return nil
	})

	before := testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ProfileCreated)))

	assert.Error(t, bus.Publish(ctx, event.Event{Type: event.ProfileCreated}))
	fail = false
	assert.NoError(t, bus.Publish(ctx, event.Event{Type: event.ProfileCreated}))

	assert.Equal(t, before+1, testutil.ToFloat64(EventHandlerErrors.WithLabelValues(string(event.ProfileCreated))))
}
