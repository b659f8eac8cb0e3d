package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/CoinCast/internal/analysis/prediction"
	"github.com/Alias1177/CoinCast/internal/board"
	"github.com/Alias1177/CoinCast/models"
)

func newTestServer(t *testing.T) (*Server, *board.Board) {
	t.Helper()
	single, err := prediction.NewForecaster(prediction.SingleAssetProfile())
	require.NoError(t, err)
	batch, err := prediction.NewForecaster(prediction.BatchProfile())
	require.NoError(t, err)

	b := board.New()
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("coincast_forecasts_total 0\n"))
	})
	return NewServer(":0", NewForecastHandler(b, single, batch, zerolog.Nop()), metrics, zerolog.Nop()), b
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func publish(b *board.Board) {
	b.PublishForecasts(models.BatchResult{
		RunID:    "run-1",
		Profile:  "batch",
		Results:  []models.ForecastResult{{Snapshot: models.AssetSnapshot{ID: "bitcoin", Symbol: "btc"}, Recommendation: models.LabelLong}},
		Failures: []models.AssetFailure{},
	})
}

func TestForecasts_NotReady(t *testing.T) {
	s, _ := newTestServer(t)

	for _, path := range []string{"/api/forecasts", "/api/forecasts/bitcoin", "/api/hot"} {
		rec := do(s, http.MethodGet, path, "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "ERR_NOT_READY")
	}
}

func TestForecasts(t *testing.T) {
	s, b := newTestServer(t)
	publish(b)

	rec := do(s, http.MethodGet, "/api/forecasts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var batch models.BatchResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &batch))
	assert.Equal(t, "run-1", batch.RunID)
	require.Len(t, batch.Results, 1)
	assert.Equal(t, models.LabelLong, batch.Results[0].Recommendation)
}

func TestForecastByID(t *testing.T) {
	s, b := newTestServer(t)
	publish(b)

	rec := do(s, http.MethodGet, "/api/forecasts/bitcoin", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(s, http.MethodGet, "/api/forecasts/dogecoin", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_NOT_FOUND")
}

func TestForecast_OnDemand(t *testing.T) {
	s, _ := newTestServer(t)

	body := `{"snapshot":{"id":"bitcoin","symbol":"btc","current_price":100,
		"price_change_percentage_24h":2.4,"price_change_percentage_1h_in_currency":2},"seed":7}`
	rec := do(s, http.MethodPost, "/api/forecast", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.ForecastResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Len(t, result.Points, 10)
	assert.Equal(t, "bitcoin", result.Snapshot.ID)

	// same seed, same forecast
	again := do(s, http.MethodPost, "/api/forecast", body)
	var second models.ForecastResult
	require.NoError(t, json.Unmarshal(decode(t, again).Data, &second))
	assert.Equal(t, result.Points, second.Points)

	batchBody := strings.Replace(body, `"seed":7`, `"seed":7,"profile":"batch"`, 1)
	rec = do(s, http.MethodPost, "/api/forecast", batchBody)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Len(t, result.Points, 20)
}

func TestForecast_Invalid(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative price", `{"snapshot":{"id":"x","symbol":"x","current_price":-5}}`, "current_price"},
		{"missing id", `{"snapshot":{"symbol":"x","current_price":5}}`, "ERR_REQUIRED"},
		{"unknown profile", `{"snapshot":{"id":"x","symbol":"x","current_price":5},"profile":"weekly"}`, "ERR_ONEOF"},
		{"malformed", `{"snapshot":`, "ERR_UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, http.MethodPost, "/api/forecast", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestHotAndHealth(t *testing.T) {
	s, b := newTestServer(t)
	b.PublishHot(models.HotTokens{TopGainers: []models.HotToken{{ID: "pepe"}}})

	rec := do(s, http.MethodGet, "/api/hot", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pepe")

	rec = do(s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = do(s, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "coincast_forecasts_total")
}
