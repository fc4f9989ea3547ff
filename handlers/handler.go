package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/bikeapi/features"
	"github.com/padraicbc/bikeapi/predictor"
	"github.com/padraicbc/bikeapi/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	store store.Store
	model predictor.Regressor
	basis features.InteractionBasis
	log   *zap.Logger

	// now is swappable so tests can pin record timestamps.
	now func() time.Time
}

// New creates a Handler with the given record store, regressor and
// interaction-term basis.
func New(s store.Store, model predictor.Regressor, basis features.InteractionBasis, log *zap.Logger) *Handler {
	return &Handler{
		store: s,
		model: model,
		basis: basis,
		log:   log,
		now:   time.Now,
	}
}

// Register wires the routes into the echo instance.
func (h *Handler) Register(e *echo.Echo) {
	e.POST("/predict", h.CreatePrediction)
	e.GET("/predict", h.History)
	e.POST("/update-actual", h.UpdateActual)
	e.GET("/health", h.Health)
}

// Health reports liveness.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// errorResponse is the body of every failed request: {"error": "..."}.
type errorResponse struct {
	Error string `json:"error"`
}

func jsonError(c echo.Context, code int, msg string) error {
	return c.JSON(code, errorResponse{Error: msg})
}

func (h *Handler) timestamp() string {
	return h.now().UTC().Format(time.RFC3339)
}
