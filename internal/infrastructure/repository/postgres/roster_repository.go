package postgres

import (
	"context"
	"fmt"
	"maps"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-market/internal/domain/roster"
	qb "github.com/riskibarqy/fantasy-market/internal/platform/querybuilder"
)

// RosterRepository stores aggregates across user_season_states, roster_base,
// roster_draft and draft_actions. Mutate holds a row lock on the user's
// state row for the whole read-modify-write.
type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) Get(ctx context.Context, userID, seasonID string) (*roster.Entry, bool, error) {
	entry, found, err := loadEntry(ctx, r.db, userID, seasonID, false)
	if err != nil {
		return nil, false, err
	}
	return entry, found, nil
}

func (r *RosterRepository) Mutate(ctx context.Context, userID, seasonID string, init func() *roster.Entry, fn roster.MutateFunc) (*roster.Entry, error) {
	if fn == nil {
		return nil, fmt.Errorf("mutate func is required")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx for roster mutate: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	entry, found, err := loadEntry(ctx, tx, userID, seasonID, true)
	if err != nil {
		return nil, err
	}
	if !found {
		if init == nil {
			return nil, fmt.Errorf("roster entry user=%s season=%s not found", userID, seasonID)
		}
		if err := insertState(ctx, tx, init()); err != nil {
			return nil, err
		}
		entry, found, err = loadEntry(ctx, tx, userID, seasonID, true)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, fmt.Errorf("roster entry user=%s season=%s missing after insert", userID, seasonID)
		}
	}

	loaded := entry.Clone()
	if err := fn(entry); err != nil {
		return nil, err
	}

	if err := updateState(ctx, tx, entry); err != nil {
		return nil, err
	}
	if !maps.Equal(loaded.Base, entry.Base) {
		if err := replaceMembers(ctx, tx, "roster_base", entry.State.UserID, entry.State.SeasonID, entry.Base); err != nil {
			return nil, err
		}
	}
	if !maps.Equal(loaded.Draft, entry.Draft) {
		if err := replaceMembers(ctx, tx, "roster_draft", entry.State.UserID, entry.State.SeasonID, entry.Draft); err != nil {
			return nil, err
		}
	}
	if err := writeActions(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit roster mutate: %w", err)
	}

	entry.State.Version++
	return entry.Clone(), nil
}

func (r *RosterRepository) ListUserIDs(ctx context.Context, seasonID string) ([]string, error) {
	query, args, err := qb.Select("user_id").From("user_season_states").
		Where(qb.Eq("season_id", seasonID)).
		OrderBy("user_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster users query: %w", err)
	}

	var out []string
	if err := r.db.SelectContext(ctx, &out, query, args...); err != nil {
		return nil, fmt.Errorf("list roster users: %w", err)
	}
	return out, nil
}

func loadEntry(ctx context.Context, q sqlx.QueryerContext, userID, seasonID string, lock bool) (*roster.Entry, bool, error) {
	stateQuery := qb.Select(userSeasonStateColumns...).From("user_season_states").
		Where(qb.Eq("user_id", userID), qb.Eq("season_id", seasonID))
	if lock {
		stateQuery = stateQuery.ForUpdate()
	}
	query, args, err := stateQuery.ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build select user season state query: %w", err)
	}

	var row userSeasonStateTableModel
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("select user season state: %w", err)
	}

	base, err := loadMembers(ctx, q, "roster_base", userID, seasonID)
	if err != nil {
		return nil, false, err
	}
	draft, err := loadMembers(ctx, q, "roster_draft", userID, seasonID)
	if err != nil {
		return nil, false, err
	}

	actionsQuery, actionsArgs, err := qb.Select(
		"DISTINCT ON (player_id) id",
		"user_id",
		"season_id",
		"action",
		"player_id",
		"created_at",
	).From("draft_actions").
		Where(qb.Eq("user_id", userID), qb.Eq("season_id", seasonID)).
		OrderBy("player_id", "created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, false, fmt.Errorf("build select latest draft actions query: %w", err)
	}
	var actionRows []draftActionTableModel
	if err := sqlx.SelectContext(ctx, q, &actionRows, actionsQuery, actionsArgs...); err != nil {
		return nil, false, fmt.Errorf("select latest draft actions: %w", err)
	}

	lastActions := make(map[string]roster.DraftAction, len(actionRows))
	for _, actionRow := range actionRows {
		lastActions[actionRow.PlayerID] = actionRow.toDomain()
	}

	return &roster.Entry{
		State:       row.toState(),
		Base:        roster.NewPlayerSet(base...),
		Draft:       roster.NewPlayerSet(draft...),
		CaptainID:   nullStringValue(row.CaptainPlayerID),
		LastActions: lastActions,
	}, true, nil
}

func loadMembers(ctx context.Context, q sqlx.QueryerContext, table, userID, seasonID string) ([]string, error) {
	query, args, err := qb.Select("player_id").From(table).
		Where(qb.Eq("user_id", userID), qb.Eq("season_id", seasonID)).
		OrderBy("player_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	var out []string
	if err := sqlx.SelectContext(ctx, q, &out, query, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return out, nil
}

func insertState(ctx context.Context, tx *sqlx.Tx, entry *roster.Entry) error {
	query, args, err := qb.InsertModel("user_season_states", userSeasonStateRow(entry), "ON CONFLICT (user_id, season_id) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build insert user season state query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user season state: %w", err)
	}
	return nil
}

func updateState(ctx context.Context, tx *sqlx.Tx, entry *roster.Entry) error {
	row := userSeasonStateRow(entry)
	query, args, err := qb.Update("user_season_states").
		Set("budget_base", row.BudgetBase).
		Set("budget_current", row.BudgetCurrent).
		Set("changes_used_total", row.ChangesUsedTotal).
		Set("last_frozen_round", row.LastFrozenRound).
		Set("last_committed_round", row.LastCommittedRound).
		Set("last_freeze_changes", row.LastFreezeChanges).
		Set("is_preseason", row.IsPreseason).
		Set("captain_player_id", row.CaptainPlayerID).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", row.UserID),
			qb.Eq("season_id", row.SeasonID),
			qb.Eq("version", row.Version),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update user season state query: %w", err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update user season state: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("read updated user season state rows: %w", err)
	}
	if affected != 1 {
		return fmt.Errorf("update user season state: version %d is stale", row.Version)
	}
	return nil
}

func replaceMembers(ctx context.Context, tx *sqlx.Tx, table, userID, seasonID string, members roster.PlayerSet) error {
	deleteQuery, deleteArgs, err := qb.DeleteFrom(table).
		Where(qb.Eq("user_id", userID), qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	if members.Len() == 0 {
		return nil
	}
	insert := qb.InsertInto(table).Columns("user_id", "season_id", "player_id")
	for _, playerID := range members.Sorted() {
		insert = insert.Values(userID, seasonID, playerID)
	}
	insertQuery, insertArgs, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: duplicate member: %w", table, err)
		}
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

func writeActions(ctx context.Context, tx *sqlx.Tx, entry *roster.Entry) error {
	if entry.ActionsPurged() {
		query, args, err := qb.DeleteFrom("draft_actions").
			Where(qb.Eq("user_id", entry.State.UserID), qb.Eq("season_id", entry.State.SeasonID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build purge draft actions query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("purge draft actions: %w", err)
		}
	}

	for _, action := range entry.AppendedActions() {
		query, args, err := qb.InsertModel("draft_actions", draftActionRow(action), "")
		if err != nil {
			return fmt.Errorf("build insert draft action query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert draft action: %w", err)
		}
	}
	return nil
}
