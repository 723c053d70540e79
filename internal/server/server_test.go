package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/cwa-forecast/internal/config"
	"github.com/vzahanych/cwa-forecast/internal/forecast"
	"github.com/vzahanych/cwa-forecast/internal/metrics"
	"github.com/vzahanych/cwa-forecast/internal/server/handlers"
	"github.com/vzahanych/cwa-forecast/internal/server/middlewares"
	"go.uber.org/zap/zaptest"
)

type fakeFetcher struct {
	mu       sync.Mutex
	regions  forecast.Regions
	result   *forecast.Forecast
	err      error
	requests []forecast.ForecastRequest
}

func (f *fakeFetcher) Fetch(ctx context.Context, req forecast.ForecastRequest) (*forecast.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeFetcher) calls() []forecast.ForecastRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]forecast.ForecastRequest(nil), f.requests...)
}

func (f *fakeFetcher) Regions() forecast.Regions {
	return f.regions
}

func newFake() *fakeFetcher {
	return &fakeFetcher{
		regions: forecast.NewRegions(config.TaiwanRegions),
		result: &forecast.Forecast{
			Region: "臺北市",
			Temperatures: forecast.TemperatureSeries{
				{Timestamp: "06-01 12:00", MinTemp: 24, MaxTemp: 30},
			},
			Elements: forecast.ElementTable{
				{ElementName: "Wx", ForecastValue: "多雲"},
				{ElementName: "MinT", ForecastValue: "24"},
				{ElementName: "MaxT", ForecastValue: "30"},
			},
		},
	}
}

func newTestServer(t *testing.T, fetcher *fakeFetcher, credential string) *httptest.Server {
	t.Helper()
	srv := NewServer(config.NewDefaultConfig().Server, fetcher, credential, metrics.New(), zaptest.NewLogger(t), nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, rawURL string, out any) *http.Response {
	t.Helper()
	resp, err := http.Get(rawURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func forecastURL(base, region string) string {
	return base + "/forecast?region=" + url.QueryEscape(region)
}

func TestGetForecast(t *testing.T) {
	fake := newFake()
	ts := newTestServer(t, fake, "CWA-KEY")

	var got forecast.Forecast
	resp := getJSON(t, forecastURL(ts.URL, "臺北市"), &got)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(middlewares.RequestIDHeader))
	assert.Equal(t, *fake.result, got)

	calls := fake.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, forecast.ForecastRequest{RegionName: "臺北市", Credential: "CWA-KEY"}, calls[0])
}

func TestGetForecast_KeepsRequestID(t *testing.T) {
	ts := newTestServer(t, newFake(), "CWA-KEY")

	req, err := http.NewRequest(http.MethodGet, forecastURL(ts.URL, "臺北市"), nil)
	require.NoError(t, err)
	req.Header.Set(middlewares.RequestIDHeader, "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "req-123", resp.Header.Get(middlewares.RequestIDHeader))
}

func TestGetForecast_BadRegion(t *testing.T) {
	tests := []struct {
		name string
		url  func(base string) string
		code string
	}{
		{"missing", func(base string) string { return base + "/forecast" }, "INVALID_PARAMS"},
		{"unknown", func(base string) string { return forecastURL(base, "Atlantis") }, "INVALID_REGION"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			ts := newTestServer(t, fake, "CWA-KEY")

			var body handlers.ErrorResponse
			resp := getJSON(t, tt.url(ts.URL), &body)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
			assert.Empty(t, fake.calls())
		})
	}
}

func TestGetForecast_NoCredential(t *testing.T) {
	fake := newFake()
	ts := newTestServer(t, fake, "")

	var body handlers.ErrorResponse
	resp := getJSON(t, forecastURL(ts.URL, "臺北市"), &body)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "CREDENTIAL_MISSING", body.Code)
	assert.Empty(t, fake.calls())
}

func TestGetForecast_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"rejected", &forecast.APIRejectedError{StatusCode: 401, Reason: "x", Raw: []byte(`{"success":"false"}`)}, http.StatusBadGateway, "UPSTREAM_REJECTED"},
		{"malformed", &forecast.MalformedResponseError{Field: "MinT.time[0].parameter.parameterName", Err: errors.New("N/A")}, http.StatusBadGateway, "MALFORMED_RESPONSE"},
		{"network", &forecast.NetworkError{Err: errors.New("connection refused")}, http.StatusGatewayTimeout, "UPSTREAM_UNAVAILABLE"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFake()
			fake.err = tt.err
			ts := newTestServer(t, fake, "CWA-KEY")

			var body handlers.ErrorResponse
			resp := getJSON(t, forecastURL(ts.URL, "臺北市"), &body)

			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestGetForecast_RejectedCarriesPayload(t *testing.T) {
	fake := newFake()
	fake.err = &forecast.APIRejectedError{StatusCode: 401, Raw: []byte(`{"message":"Unauthorized"}`)}
	ts := newTestServer(t, fake, "CWA-KEY")

	var body handlers.ErrorResponse
	getJSON(t, forecastURL(ts.URL, "臺北市"), &body)

	assert.JSONEq(t, `{"message":"Unauthorized"}`, body.Details)
}

func TestGetRegions(t *testing.T) {
	ts := newTestServer(t, newFake(), "CWA-KEY")

	var body handlers.RegionsResponse
	resp := getJSON(t, ts.URL+"/regions", &body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.TaiwanRegions, body.Regions)
}

func TestHealthEndpoints(t *testing.T) {
	ready := newTestServer(t, newFake(), "CWA-KEY")
	notReady := newTestServer(t, newFake(), "")

	var h handlers.HealthResponse
	assert.Equal(t, http.StatusOK, getJSON(t, ready.URL+"/health/live", &h).StatusCode)
	assert.Equal(t, "alive", h.Status)

	assert.Equal(t, http.StatusOK, getJSON(t, ready.URL+"/health/ready", &h).StatusCode)
	assert.Equal(t, "ready", h.Status)

	assert.Equal(t, http.StatusServiceUnavailable, getJSON(t, notReady.URL+"/health/ready", &h).StatusCode)
	assert.Equal(t, "unavailable", h.Status)

	getJSON(t, notReady.URL+"/health", &h)
	assert.Equal(t, "degraded", h.Status)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, newFake(), "CWA-KEY")
	getJSON(t, forecastURL(ts.URL, "臺北市"), nil)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `cwa_forecast_http_requests_total{method="GET",route="/forecast",status="200"} 1`)
}
