package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/market"
	"github.com/riskibarqy/fantasy-market/internal/domain/player"
	"github.com/riskibarqy/fantasy-market/internal/usecase"
)

type initTeamRequest struct {
	PlayerIDs []string `json:"player_ids" validate:"required,dive,required"`
}

type playerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type marketPlayerDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	TeamID   string `json:"team_id"`
	TeamName string `json:"team_name"`
	Price    int64  `json:"price"`
}

type marketStatusDTO struct {
	SeasonID       string `json:"season_id"`
	ActiveRound    *int   `json:"active_round"`
	Now            string `json:"now"`
	MarketClosesAt string `json:"market_closes_at,omitempty"`
	MarketOpensAt  string `json:"market_opens_at,omitempty"`
	IsOpen         bool   `json:"is_open"`
}

type teamPlayerDTO struct {
	PlayerID string `json:"player_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	TeamID   string `json:"team_id,omitempty"`
	TeamName string `json:"team_name"`
	Price    *int64 `json:"price"`
}

type teamDTO struct {
	SeasonID         string          `json:"season_id"`
	Budget           int64           `json:"budget"`
	ChangesUsedTotal int             `json:"changes_used_total"`
	ChangesThisWeek  int             `json:"changes_this_week"`
	ChangesLeftTotal int             `json:"changes_left_total"`
	IsPreseason      bool            `json:"is_preseason"`
	CaptainPlayerID  *string         `json:"captain_player_id"`
	Players          []teamPlayerDTO `json:"players"`
	Count            int             `json:"count"`
	NeedsInitialTeam bool            `json:"needs_initial_team"`
}

type mutationDTO struct {
	Budget          int64   `json:"budget"`
	Count           int     `json:"count"`
	CaptainPlayerID *string `json:"captain_player_id"`
	Frozen          bool    `json:"frozen"`
}

func marketPlayerToDTO(v player.Player) marketPlayerDTO {
	return marketPlayerDTO{
		ID:       v.ID,
		Name:     v.Name,
		Position: string(v.Position),
		TeamID:   v.TeamID,
		TeamName: v.TeamName,
		Price:    v.Price,
	}
}

func marketStatusToDTO(v market.Status) marketStatusDTO {
	return marketStatusDTO{
		SeasonID:       v.SeasonID,
		ActiveRound:    v.ActiveRound,
		Now:            v.Now.UTC().Format(time.RFC3339),
		MarketClosesAt: formatOptionalTime(v.ClosesAt),
		MarketOpensAt:  formatOptionalTime(v.OpensAt),
		IsOpen:         v.IsOpen,
	}
}

func teamToDTO(v usecase.TeamView) teamDTO {
	players := make([]teamPlayerDTO, 0, len(v.Players))
	for _, item := range v.Players {
		players = append(players, teamPlayerDTO{
			PlayerID: item.PlayerID,
			Name:     item.Name,
			Position: item.Position,
			TeamID:   item.TeamID,
			TeamName: item.TeamName,
			Price:    item.Price,
		})
	}

	return teamDTO{
		SeasonID:         v.SeasonID,
		Budget:           v.Budget,
		ChangesUsedTotal: v.ChangesUsedTotal,
		ChangesThisWeek:  v.ChangesThisWeek,
		ChangesLeftTotal: v.ChangesLeftTotal,
		IsPreseason:      v.IsPreseason,
		CaptainPlayerID:  optionalString(v.CaptainPlayerID),
		Players:          players,
		Count:            v.Count,
		NeedsInitialTeam: v.NeedsInitialTeam,
	}
}

func mutationToDTO(v usecase.MutationResult) mutationDTO {
	return mutationDTO{
		Budget:          v.Budget,
		Count:           v.Count,
		CaptainPlayerID: optionalString(v.CaptainPlayerID),
		Frozen:          v.Frozen,
	}
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func optionalString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
