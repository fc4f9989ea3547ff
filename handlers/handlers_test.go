package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/padraicbc/bikeapi/features"
	"github.com/padraicbc/bikeapi/store"
)

// stubRegressor returns a fixed estimate and records the vector it was fed.
type stubRegressor struct {
	value      float64
	lastVector []float64
}

func (s *stubRegressor) Predict(v []float64) (float64, error) {
	s.lastVector = append([]float64(nil), v...)
	return s.value, nil
}

func newTestServer(t *testing.T) (*echo.Echo, *Handler, *store.MemoryStore, *stubRegressor) {
	t.Helper()

	mem := store.NewMemoryStore()
	stub := &stubRegressor{value: 142.7}
	h := New(mem, stub, features.BasisNormalized, zap.NewNop())
	h.now = func() time.Time { return time.Date(2025, 5, 23, 17, 49, 0, 0, time.UTC) }

	e := echo.New()
	h.Register(e)
	return e, h, mem, stub
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), into))
}

func TestCreatePredictionAppliesDefaults(t *testing.T) {
	e, _, mem, stub := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/predict", `{"season":1,"mnth":1,"hr":10,"weekday":3,"temp":10}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Prediction float64 `json:"prediction"`
		RequestID  string  `json:"request_id"`
	}
	decode(t, rec, &resp)
	assert.Equal(t, 142.7, resp.Prediction)
	assert.NotEmpty(t, resp.RequestID)

	// Vector order: season, yr, mnth, hr, weekday, weathersit, temp_n, hum_n,
	// wind_n, holiday, workingday, temp*weathersit, temp*hum.
	require.Len(t, stub.lastVector, features.VectorLen)
	assert.Equal(t, 1.0, stub.lastVector[1], "yr is fixed to 1")
	assert.Equal(t, 2.0, stub.lastVector[5], "weathersit defaults to 2")
	assert.InDelta(t, 0.5, stub.lastVector[7], 1e-9, "hum defaults to 50 then normalizes")
	assert.Equal(t, 0.0, stub.lastVector[8], "windspeed defaults to 0")
	assert.Equal(t, 0.0, stub.lastVector[9], "holiday defaults to false")
	assert.Equal(t, 1.0, stub.lastVector[10], "workingday defaults to true")

	// The stored record keeps the raw temp, not the normalized value.
	db, err := mem.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, db.Predictions, 1)
	assert.Equal(t, 10.0, db.Predictions[0].Temp)
	assert.Equal(t, 50.0, db.Predictions[0].Hum)
	assert.Equal(t, resp.RequestID, db.Predictions[0].RequestID)
	assert.Equal(t, "2025-05-23T17:49:00Z", db.Predictions[0].Timestamp)
}

func TestCreatePredictionUniqueRequestIDs(t *testing.T) {
	e, _, _, _ := newTestServer(t)
	body := `{"season":1,"mnth":1,"hr":10,"weekday":3,"temp":10}`

	ids := map[string]bool{}
	for i := 0; i < 5; i++ {
		rec := doJSON(e, http.MethodPost, "/predict", body)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			RequestID string `json:"request_id"`
		}
		decode(t, rec, &resp)
		assert.False(t, ids[resp.RequestID], "request_id %s repeated", resp.RequestID)
		ids[resp.RequestID] = true
	}

	rec := doJSON(e, http.MethodGet, "/predict", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hist struct {
		History []struct {
			RequestID string   `json:"request_id"`
			Actual    *float64 `json:"actual"`
		} `json:"history"`
	}
	decode(t, rec, &hist)
	require.Len(t, hist.History, 5)
	for _, entry := range hist.History {
		assert.True(t, ids[entry.RequestID])
		assert.Nil(t, entry.Actual, "no actual reported yet")
	}
}

func TestCreatePredictionMissingRequiredField(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing season", `{"mnth":1,"hr":10,"weekday":3,"temp":10}`, "season"},
		{"missing temp", `{"season":1,"mnth":1,"hr":10,"weekday":3}`, "temp"},
		{"zero-valued season", `{"season":0,"mnth":1,"hr":10,"weekday":3,"temp":10}`, "season"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, mem, _ := newTestServer(t)

			rec := doJSON(e, http.MethodPost, "/predict", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp struct {
				Error string `json:"error"`
			}
			decode(t, rec, &resp)
			assert.Contains(t, resp.Error, tt.want)

			db, err := mem.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, db.Predictions, "rejected request must not persist")
		})
	}
}

func TestCreatePredictionNonNumericInput(t *testing.T) {
	e, _, mem, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/predict", `{"season":1,"mnth":1,"hr":10,"weekday":3,"temp":"warm"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	db, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, db.Predictions)
}

func TestActualRoundTrip(t *testing.T) {
	e, _, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/predict", `{"season":1,"mnth":1,"hr":10,"weekday":3,"temp":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		RequestID string `json:"request_id"`
	}
	decode(t, rec, &created)

	rec = doJSON(e, http.MethodPost, "/update-actual", `{"request_id":"`+created.RequestID+`","actual_rentals":120.0}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		Status string `json:"status"`
	}
	decode(t, rec, &status)
	assert.Equal(t, "updated", status.Status)

	rec = doJSON(e, http.MethodGet, "/predict", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var hist struct {
		History []struct {
			RequestID string   `json:"request_id"`
			Actual    *float64 `json:"actual"`
		} `json:"history"`
	}
	decode(t, rec, &hist)
	require.Len(t, hist.History, 1)
	require.NotNil(t, hist.History[0].Actual)
	assert.Equal(t, 120.0, *hist.History[0].Actual)
}

func TestUpdateActualUpsertKeepsLatest(t *testing.T) {
	e, _, mem, _ := newTestServer(t)

	for _, body := range []string{
		`{"request_id":"abc","actual_rentals":50}`,
		`{"request_id":"abc","actual_rentals":75}`,
	} {
		rec := doJSON(e, http.MethodPost, "/update-actual", body)
		require.Equal(t, http.StatusOK, rec.Code)
	}

	db, err := mem.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, db.Actuals, 1, "upsert must keep a single record per id")
	assert.Equal(t, 75.0, db.Actuals[0].ActualRentals)
}

func TestUpdateActualAcceptsUnknownRequestID(t *testing.T) {
	// No foreign-key check against predictions: unknown ids are stored.
	e, _, mem, _ := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/update-actual", `{"request_id":"never-predicted","actual_rentals":12}`)
	require.Equal(t, http.StatusOK, rec.Code)

	db, err := mem.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, db.Actuals, 1)
}

func TestUpdateActualMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing actual_rentals", `{"request_id":"abc"}`},
		{"missing request_id", `{"actual_rentals":12}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _, mem, _ := newTestServer(t)

			rec := doJSON(e, http.MethodPost, "/update-actual", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			db, err := mem.Load(context.Background())
			require.NoError(t, err)
			assert.Empty(t, db.Actuals, "rejected request must not persist")
		})
	}
}

func TestHistoryEmptyStore(t *testing.T) {
	e, _, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/predict", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"history":[]}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	e, _, _, _ := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
