package valhalla

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shenikar/storm_route_system/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStart = models.Location{Lat: 25.7617, Lon: -80.1918}
	testEnd   = models.Location{Lat: 26.7153, Lon: -80.0534}
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func okResponse() *RouteResponse {
	return &RouteResponse{
		Trip: Trip{
			Legs: []RouteLeg{
				{
					Maneuvers: []Maneuver{
						{Instruction: "Drive north.", Time: 30.4, Length: 0.52, StreetNames: []string{"I-95"}},
						{Instruction: "You have arrived.", Time: 5.0, Length: 0.0},
					},
					Summary: TripSummary{Time: 3723.0, Length: 68.27},
					Shape:   "encoded_polyline_data",
				},
			},
			Summary: TripSummary{
				Time: 3723.0, Length: 68.27,
				MinLat: 25.7, MinLon: -80.2, MaxLat: 26.8, MaxLon: -80.0,
			},
			StatusMessage: "Found route between points",
			Status:        0,
			Units:         "miles",
		},
	}
}

// capturedRequest - разобранное тело запроса к тестовому серверу
type capturedRequest struct {
	Locations []map[string]float64 `json:"locations"`
	Costing   string               `json:"costing"`
	Exclude   *struct {
		Locations []map[string]float64 `json:"locations"`
	} `json:"exclude"`
	DirectionsOptions struct {
		Units string `json:"units"`
	} `json:"directions_options"`
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	// Минимальный интервал дросселя 1мс, чтобы тесты не ждали
	client := NewClient(srv.URL, 5*time.Second, time.Millisecond, testLogger())
	return srv, client
}

func TestRoute_Success(t *testing.T) {
	var captured capturedRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/route", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(okResponse())
	})

	exclusions := []models.ExclusionPoint{{Lat: 26.1224, Lon: -80.1373}}
	route, err := client.Route(context.Background(), testStart, testEnd, exclusions, CostingBicycle)
	require.NoError(t, err)
	assert.Equal(t, 0, route.Trip.Status)

	// Контракт провайдера: locations, costing, exclude.locations, units=miles
	require.Len(t, captured.Locations, 2)
	assert.InDelta(t, 25.7617, captured.Locations[0]["lat"], 1e-9)
	assert.Equal(t, "bicycle", captured.Costing)
	assert.Equal(t, "miles", captured.DirectionsOptions.Units)
	require.NotNil(t, captured.Exclude)
	require.Len(t, captured.Exclude.Locations, 1)
	assert.InDelta(t, -80.1373, captured.Exclude.Locations[0]["lon"], 1e-9)
}

func TestRoute_DefaultCostingAndNoExclude(t *testing.T) {
	var captured capturedRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(okResponse())
	})

	_, err := client.Route(context.Background(), testStart, testEnd, nil, "")
	require.NoError(t, err)
	assert.Equal(t, "auto", captured.Costing)
	assert.Nil(t, captured.Exclude)
}

func TestRoute_HTTPErrorStatus(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	_, err := client.Route(context.Background(), testStart, testEnd, nil, CostingAuto)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusBadRequest, providerErr.HTTPStatus)
}

func TestRoute_TripStatusErrorInsideOKResponse(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		resp := okResponse()
		resp.Trip.Status = 171
		resp.Trip.StatusMessage = "No suitable edges near location"
		json.NewEncoder(w).Encode(resp)
	})

	_, err := client.Route(context.Background(), testStart, testEnd, nil, CostingAuto)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, 171, providerErr.TripStatus)
	assert.Zero(t, providerErr.HTTPStatus)
	assert.Contains(t, providerErr.Message, "No suitable edges")
}

func TestRouteOptions_SequentialOptimalThenBaseline(t *testing.T) {
	var mu sync.Mutex
	var requests []capturedRequest
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var captured capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		mu.Lock()
		requests = append(requests, captured)
		mu.Unlock()
		json.NewEncoder(w).Encode(okResponse())
	})

	exclusions := []models.ExclusionPoint{
		{Lat: 26.1224, Lon: -80.1373},
		{Lat: 26.2, Lon: -80.15},
	}
	result, err := client.RouteOptions(context.Background(), testStart, testEnd, exclusions, CostingAuto)
	require.NoError(t, err)

	// Ровно два вызова: сначала с исключениями, затем без
	require.Len(t, requests, 2)
	require.NotNil(t, requests[0].Exclude)
	assert.Len(t, requests[0].Exclude.Locations, 2)
	assert.Nil(t, requests[1].Exclude)

	assert.Equal(t, 2, result.AvoidedIncidents)
	assert.NotNil(t, result.Optimal)
	assert.NotNil(t, result.Baseline)
}

func TestRouteOptions_TimeoutFallbackWithoutExclusions(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var captured capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		if captured.Exclude != nil {
			http.Error(w, "upstream timed out", http.StatusGatewayTimeout)
			return
		}
		json.NewEncoder(w).Encode(okResponse())
	})

	exclusions := []models.ExclusionPoint{{Lat: 26.1224, Lon: -80.1373}}
	result, err := client.RouteOptions(context.Background(), testStart, testEnd, exclusions, CostingAuto)
	require.NoError(t, err)

	// Деградация: один маршрут и как оптимальный, и как базовый
	assert.Equal(t, 0, result.AvoidedIncidents)
	assert.Same(t, result.Optimal, result.Baseline)
}

func TestRouteOptions_FallbackFailurePropagatesOriginalError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream timed out", http.StatusGatewayTimeout)
	})

	exclusions := []models.ExclusionPoint{{Lat: 26.1224, Lon: -80.1373}}
	_, err := client.RouteOptions(context.Background(), testStart, testEnd, exclusions, CostingAuto)
	require.Error(t, err)

	var providerErr *ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, http.StatusGatewayTimeout, providerErr.HTTPStatus)
}

func TestRouteOptions_NonTimeoutErrorNoFallback(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls++
		mu.Unlock()
		http.Error(w, "bad request", http.StatusBadRequest)
	})

	exclusions := []models.ExclusionPoint{{Lat: 26.1224, Lon: -80.1373}}
	_, err := client.RouteOptions(context.Background(), testStart, testEnd, exclusions, CostingAuto)
	require.Error(t, err)
	assert.Equal(t, 1, calls, "400 is not retryable, expected a single call")
}

func TestThrottle_SpacesOutboundCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(okResponse())
	}))
	t.Cleanup(srv.Close)

	const minInterval = 150 * time.Millisecond
	client := NewClient(srv.URL, 5*time.Second, minInterval, testLogger())

	started := time.Now()
	for i := 0; i < 3; i++ {
		_, err := client.Route(context.Background(), testStart, testEnd, nil, CostingAuto)
		require.NoError(t, err)
	}

	// Первый вызов немедленный, два следующих ждут минимум по интервалу
	assert.GreaterOrEqual(t, time.Since(started), 2*minInterval)
}

func TestFormatRouteSummary_Rounding(t *testing.T) {
	summary := FormatRouteSummary(okResponse())

	assert.InDelta(t, 68.3, summary.DistanceMiles, 1e-9)
	assert.Equal(t, 62, summary.DurationMinutes) // 3723с / 60 = 62.05 -> 62
	assert.InDelta(t, 3723.0, summary.DurationSeconds, 1e-9)
	assert.InDelta(t, 25.7, summary.Bounds.MinLat, 1e-9)
	assert.InDelta(t, -80.0, summary.Bounds.MaxLon, 1e-9)
}

func TestExtractDirections_FlattensLegs(t *testing.T) {
	resp := okResponse()
	resp.Trip.Legs = append(resp.Trip.Legs, RouteLeg{
		Maneuvers: []Maneuver{{Instruction: "Continue.", Time: 10, Length: 1.26}},
	})

	directions := ExtractDirections(resp)
	require.Len(t, directions, 3)
	assert.Equal(t, "Drive north.", directions[0].Instruction)
	assert.InDelta(t, 0.5, directions[0].DistanceMiles, 1e-9)
	assert.InDelta(t, 30.0, directions[0].DurationSeconds, 1e-9)
	assert.Equal(t, []string{"I-95"}, directions[0].StreetNames)
	assert.Equal(t, "Continue.", directions[2].Instruction)
	assert.InDelta(t, 1.3, directions[2].DistanceMiles, 1e-9)
}

func TestGeometry_FirstLegShape(t *testing.T) {
	assert.Equal(t, "encoded_polyline_data", Geometry(okResponse()))
	assert.Equal(t, "", Geometry(&RouteResponse{}))
}
