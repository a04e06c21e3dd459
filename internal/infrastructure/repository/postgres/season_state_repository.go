package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-market/internal/domain/market"
	qb "github.com/riskibarqy/fantasy-market/internal/platform/querybuilder"
)

type seasonStateTableModel struct {
	SeasonID           string        `db:"season_id"`
	IsPreseason        bool          `db:"is_preseason"`
	CurrentRound       sql.NullInt64 `db:"current_round"`
	LastCommittedRound sql.NullInt64 `db:"last_committed_round"`
	UpdatedAt          time.Time     `db:"updated_at"`
}

func (m seasonStateTableModel) toDomain() market.SeasonState {
	return market.SeasonState{
		SeasonID:           m.SeasonID,
		IsPreseason:        m.IsPreseason,
		CurrentRound:       nullInt64ToIntPtr(m.CurrentRound),
		LastCommittedRound: nullInt64ToIntPtr(m.LastCommittedRound),
		UpdatedAt:          m.UpdatedAt,
	}
}

type SeasonStateRepository struct {
	db *sqlx.DB
}

func NewSeasonStateRepository(db *sqlx.DB) *SeasonStateRepository {
	return &SeasonStateRepository{db: db}
}

func (r *SeasonStateRepository) GetOrCreate(ctx context.Context, seasonID string) (market.SeasonState, error) {
	insertQuery, insertArgs, err := qb.InsertInto("season_states").
		Columns("season_id", "is_preseason").
		Values(seasonID, true).
		Suffix("ON CONFLICT (season_id) DO NOTHING").
		ToSQL()
	if err != nil {
		return market.SeasonState{}, fmt.Errorf("build insert season state query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return market.SeasonState{}, fmt.Errorf("insert season state: %w", err)
	}

	query, args, err := qb.Select("season_id", "is_preseason", "current_round", "last_committed_round", "updated_at").
		From("season_states").
		Where(qb.Eq("season_id", seasonID)).
		ToSQL()
	if err != nil {
		return market.SeasonState{}, fmt.Errorf("build select season state query: %w", err)
	}

	var row seasonStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return market.SeasonState{}, fmt.Errorf("select season state: %w", err)
	}
	return row.toDomain(), nil
}

func (r *SeasonStateRepository) MarkCommitted(ctx context.Context, seasonID string, round int, at time.Time) (market.SeasonState, error) {
	query, args, err := qb.InsertInto("season_states").
		Columns("season_id", "is_preseason", "current_round", "last_committed_round", "updated_at").
		Values(seasonID, false, round, round, at).
		Suffix(`ON CONFLICT (season_id) DO UPDATE SET
    is_preseason = FALSE,
    current_round = EXCLUDED.current_round,
    last_committed_round = EXCLUDED.last_committed_round,
    updated_at = EXCLUDED.updated_at
RETURNING season_id, is_preseason, current_round, last_committed_round, updated_at`).
		ToSQL()
	if err != nil {
		return market.SeasonState{}, fmt.Errorf("build mark season committed query: %w", err)
	}

	var row seasonStateTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return market.SeasonState{}, fmt.Errorf("mark season committed: %w", err)
	}
	return row.toDomain(), nil
}
