package postgres

import (
	"database/sql"
	"time"

	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
)

type userSeasonStateTableModel struct {
	UserID             string         `db:"user_id"`
	SeasonID           string         `db:"season_id"`
	BudgetBase         int64          `db:"budget_base"`
	BudgetCurrent      int64          `db:"budget_current"`
	ChangesUsedTotal   int            `db:"changes_used_total"`
	LastFrozenRound    sql.NullInt64  `db:"last_frozen_round"`
	LastCommittedRound sql.NullInt64  `db:"last_committed_round"`
	LastFreezeChanges  int            `db:"last_freeze_changes"`
	IsPreseason        bool           `db:"is_preseason"`
	CaptainPlayerID    sql.NullString `db:"captain_player_id"`
	Version            int64          `db:"version"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

var userSeasonStateColumns = []string{
	"user_id",
	"season_id",
	"budget_base",
	"budget_current",
	"changes_used_total",
	"last_frozen_round",
	"last_committed_round",
	"last_freeze_changes",
	"is_preseason",
	"captain_player_id",
	"version",
	"created_at",
	"updated_at",
}

func userSeasonStateRow(entry *roster.Entry) userSeasonStateTableModel {
	return userSeasonStateTableModel{
		UserID:             entry.State.UserID,
		SeasonID:           entry.State.SeasonID,
		BudgetBase:         entry.State.BudgetBase,
		BudgetCurrent:      entry.State.BudgetCurrent,
		ChangesUsedTotal:   entry.State.ChangesUsedTotal,
		LastFrozenRound:    intPtrToNullInt64(entry.State.LastFrozenRound),
		LastCommittedRound: intPtrToNullInt64(entry.State.LastCommittedRound),
		LastFreezeChanges:  entry.State.LastFreezeChanges,
		IsPreseason:        entry.State.IsPreseason,
		CaptainPlayerID:    stringToNullString(entry.CaptainID),
		Version:            entry.State.Version,
		CreatedAt:          entry.State.CreatedAt,
		UpdatedAt:          entry.State.UpdatedAt,
	}
}

func (m userSeasonStateTableModel) toState() roster.UserSeasonState {
	return roster.UserSeasonState{
		UserID:             m.UserID,
		SeasonID:           m.SeasonID,
		BudgetBase:         m.BudgetBase,
		BudgetCurrent:      m.BudgetCurrent,
		ChangesUsedTotal:   m.ChangesUsedTotal,
		LastFrozenRound:    nullInt64ToIntPtr(m.LastFrozenRound),
		LastCommittedRound: nullInt64ToIntPtr(m.LastCommittedRound),
		LastFreezeChanges:  m.LastFreezeChanges,
		IsPreseason:        m.IsPreseason,
		Version:            m.Version,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

type draftActionTableModel struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	SeasonID  string    `db:"season_id"`
	Action    string    `db:"action"`
	PlayerID  string    `db:"player_id"`
	CreatedAt time.Time `db:"created_at"`
}

func draftActionRow(action roster.DraftAction) draftActionTableModel {
	return draftActionTableModel{
		ID:        action.ID,
		UserID:    action.UserID,
		SeasonID:  action.SeasonID,
		Action:    string(action.Kind),
		PlayerID:  action.PlayerID,
		CreatedAt: action.CreatedAt,
	}
}

func (m draftActionTableModel) toDomain() roster.DraftAction {
	return roster.DraftAction{
		ID:        m.ID,
		UserID:    m.UserID,
		SeasonID:  m.SeasonID,
		Kind:      roster.ActionKind(m.Action),
		PlayerID:  m.PlayerID,
		CreatedAt: m.CreatedAt,
	}
}
