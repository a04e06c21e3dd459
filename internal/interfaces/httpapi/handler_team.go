package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/fantasy-market/internal/usecase"
)

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.rosterService.GetTeam(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(view))
}

func (h *Handler) InitMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.InitMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req initTeamRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.InitTeam(ctx, principal.UserID, req.PlayerIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "init team rejected", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mutationToDTO(result))
}

func (h *Handler) AddPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddPlayer")
	defer span.End()

	h.playerMutation(w, r.WithContext(ctx), "add player", h.rosterService.AddPlayer)
}

func (h *Handler) RemovePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemovePlayer")
	defer span.End()

	h.playerMutation(w, r.WithContext(ctx), "remove player", h.rosterService.RemovePlayer)
}

func (h *Handler) UndoRemove(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UndoRemove")
	defer span.End()

	h.playerMutation(w, r.WithContext(ctx), "undo remove", h.rosterService.UndoRemove)
}

func (h *Handler) SetCaptain(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetCaptain")
	defer span.End()

	h.playerMutation(w, r.WithContext(ctx), "set captain", h.rosterService.SetCaptain)
}

func (h *Handler) ResetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetMyTeam")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.ResetDraftToBase(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "reset team rejected", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationToDTO(result))
}

type playerCommand func(ctx context.Context, userID, playerID string) (usecase.MutationResult, error)

// playerMutation runs a single-player roster command for the caller.
func (h *Handler) playerMutation(w http.ResponseWriter, r *http.Request, name string, run playerCommand) {
	ctx := r.Context()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req playerRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := run(ctx, principal.UserID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, name+" rejected", "user_id", principal.UserID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mutationToDTO(result))
}
