package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMarket")
	defer span.End()

	seasonID := h.seasonFromQuery(r)
	players, err := h.marketService.ListMarket(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "list market failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]marketPlayerDTO, 0, len(players))
	for _, item := range players {
		items = append(items, marketPlayerToDTO(item))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMarketStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarketStatus")
	defer span.End()

	seasonID := h.seasonFromQuery(r)
	status, err := h.marketService.GetMarketStatus(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get market status failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, marketStatusToDTO(status))
}

// seasonFromQuery falls back to the configured season.
func (h *Handler) seasonFromQuery(r *http.Request) string {
	if season := strings.TrimSpace(r.URL.Query().Get("season")); season != "" {
		return season
	}
	return h.seasonID
}
