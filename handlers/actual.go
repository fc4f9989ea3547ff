package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/bikeapi/models"
)

type updateActualRequest struct {
	RequestID     string   `json:"request_id"`
	ActualRentals *float64 `json:"actual_rentals"`
}

// UpdateActual records the observed rental count for a request id, replacing
// any earlier observation for the same id. The id is not checked against the
// prediction collection; observations for unknown ids are stored as-is.
func (h *Handler) UpdateActual(c echo.Context) error {
	var req updateActualRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	if req.RequestID == "" || req.ActualRentals == nil {
		h.log.Warn("update-actual rejected: missing request_id or actual_rentals")
		return jsonError(c, http.StatusBadRequest, "request_id and actual_rentals are required")
	}

	ctx := c.Request().Context()
	db, err := h.store.Load(ctx)
	if err != nil {
		h.log.Error("store load failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	db.UpsertActual(models.ActualRecord{
		RequestID:     req.RequestID,
		ActualRentals: *req.ActualRentals,
		Timestamp:     h.timestamp(),
	})

	if err := h.store.Save(ctx, db); err != nil {
		h.log.Error("store save failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	h.log.Info("actual recorded",
		zap.String("request_id", req.RequestID),
		zap.Float64("actual_rentals", *req.ActualRentals),
	)

	return c.JSON(http.StatusOK, map[string]string{"status": "updated"})
}
