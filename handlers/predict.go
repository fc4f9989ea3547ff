package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/bikeapi/features"
	"github.com/padraicbc/bikeapi/models"
)

// predictRequest is the POST /predict body. Numeric fields are pointers so a
// missing field is distinguishable from zero; non-numeric input fails binding
// and never reaches the model. holiday/workingday arrive string-encoded from
// the form ("true"/anything else).
type predictRequest struct {
	Season     *float64 `json:"season"`
	Mnth       *float64 `json:"mnth"`
	Hr         *float64 `json:"hr"`
	Weekday    *float64 `json:"weekday"`
	Temp       *float64 `json:"temp"`
	Weathersit *float64 `json:"weathersit"`
	Hum        *float64 `json:"hum"`
	Windspeed  *float64 `json:"windspeed"`
	Holiday    *string  `json:"holiday"`
	Workingday *string  `json:"workingday"`
}

// validate enforces presence and truthiness of the required fields, in the
// order the original form lists them. Zero counts as missing.
func (r *predictRequest) validate() error {
	required := []struct {
		name  string
		value *float64
	}{
		{"season", r.Season},
		{"mnth", r.Mnth},
		{"hr", r.Hr},
		{"weekday", r.Weekday},
		{"temp", r.Temp},
	}
	for _, f := range required {
		if f.value == nil || *f.value == 0 {
			return fmt.Errorf("parameter %s is required", f.name)
		}
	}
	return nil
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
	RequestID  string  `json:"request_id"`
}

// CreatePrediction validates the request, runs the model and appends a
// PredictionRecord with the raw input values to the store.
func (h *Handler) CreatePrediction(c echo.Context) error {
	var req predictRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if err := req.validate(); err != nil {
		h.log.Warn("prediction request rejected", zap.Error(err))
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	raw := features.Raw{
		Season:  *req.Season,
		Mnth:    *req.Mnth,
		Hr:      *req.Hr,
		Weekday: *req.Weekday,
		Temp:    *req.Temp,
		// The model's binary year indicator is a training-data artifact,
		// always set to the second year; it is not derived from the calendar.
		Yr:         1,
		Weathersit: floatOrDefault(req.Weathersit, 2),
		Hum:        floatOrDefault(req.Hum, 50),
		Windspeed:  floatOrDefault(req.Windspeed, 0),
		Holiday:    stringFlag(req.Holiday, "false"),
		Workingday: stringFlag(req.Workingday, "true"),
	}

	prediction, err := h.model.Predict(raw.Vector(h.basis))
	if err != nil {
		h.log.Error("model prediction failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	ctx := c.Request().Context()
	db, err := h.store.Load(ctx)
	if err != nil {
		h.log.Error("store load failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	requestID := uuid.NewString()
	db.Predictions = append(db.Predictions, models.PredictionRecord{
		RequestID:  requestID,
		Prediction: prediction,
		Season:     raw.Season,
		Yr:         raw.Yr,
		Mnth:       raw.Mnth,
		Hr:         raw.Hr,
		Weekday:    raw.Weekday,
		Weathersit: raw.Weathersit,
		Temp:       raw.Temp,
		Hum:        raw.Hum,
		Windspeed:  raw.Windspeed,
		Holiday:    raw.Holiday,
		Workingday: raw.Workingday,
		Timestamp:  h.timestamp(),
	})

	if err := h.store.Save(ctx, db); err != nil {
		h.log.Error("store save failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	h.log.Info("prediction saved",
		zap.String("request_id", requestID),
		zap.Float64("prediction", prediction),
	)

	return c.JSON(http.StatusOK, predictResponse{Prediction: prediction, RequestID: requestID})
}

func floatOrDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// stringFlag decodes the form's string-encoded booleans: exactly "true" is
// true, anything else (including absence) falls back to the default string.
func stringFlag(v *string, def string) bool {
	s := def
	if v != nil {
		s = *v
	}
	return s == "true"
}
