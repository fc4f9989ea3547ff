package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/padraicbc/bikeapi/models"
)

type historyResponse struct {
	History []models.HistoryEntry `json:"history"`
}

// History returns every prediction in store order, each joined with its
// observed count when one has been reported. No filtering, no pagination.
func (h *Handler) History(c echo.Context) error {
	db, err := h.store.Load(c.Request().Context())
	if err != nil {
		h.log.Error("store load failed", zap.Error(err))
		return jsonError(c, http.StatusInternalServerError, err.Error())
	}

	entries := make([]models.HistoryEntry, 0, len(db.Predictions))
	for _, p := range db.Predictions {
		entry := models.HistoryEntry{PredictionRecord: p}
		if a := db.FindActual(p.RequestID); a != nil {
			v := a.ActualRentals
			entry.Actual = &v
		}
		entries = append(entries, entry)
	}

	return c.JSON(http.StatusOK, historyResponse{History: entries})
}
