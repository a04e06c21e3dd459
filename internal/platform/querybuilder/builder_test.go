package querybuilder

import (
	"testing"

	"github.com/lib/pq"
)

func TestSelectBuilder(t *testing.T) {
	tests := []struct {
		name      string
		build     func() (string, []any, error)
		wantQuery string
		wantArgs  int
	}{
		{
			name: "row lock",
			build: Select("user_id", "budget_current").
				From("user_season_states").
				Where(Eq("user_id", "u1"), Eq("season_id", "2025-26")).
				ForUpdate().
				ToSQL,
			wantQuery: "SELECT user_id, budget_current FROM user_season_states WHERE user_id = $1 AND season_id = $2 FOR UPDATE",
			wantArgs:  2,
		},
		{
			name: "catalog batch",
			build: Select("player_id").
				From("market_players").
				Where(Eq("season_id", "s1"), AnyOf("player_id", pq.Array([]string{"P001", "P002"})), IsNull("deleted_at")).
				OrderBy("price_current DESC", "player_id").
				ToSQL,
			wantQuery: "SELECT player_id FROM market_players WHERE season_id = $1 AND player_id = ANY($2) AND deleted_at IS NULL ORDER BY price_current DESC, player_id",
			wantArgs:  2,
		},
		{
			name:      "no conditions",
			build:     Select("season_id").From("season_states").ToSQL,
			wantQuery: "SELECT season_id FROM season_states",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := tt.build()
			if err != nil {
				t.Fatalf("build query: %v", err)
			}
			if query != tt.wantQuery {
				t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", tt.wantQuery, query)
			}
			if len(args) != tt.wantArgs {
				t.Fatalf("unexpected args: %+v", args)
			}
		})
	}
}

func TestSelectBuilder_RequiresTableAndColumns(t *testing.T) {
	if _, _, err := Select().From("t").ToSQL(); err == nil {
		t.Fatalf("expected error without columns")
	}
	if _, _, err := Select("a").ToSQL(); err == nil {
		t.Fatalf("expected error without table")
	}
}

func TestInsertBuilder_MultiRow(t *testing.T) {
	query, args, err := InsertInto("roster_draft").
		Columns("user_id", "season_id", "player_id").
		Values("u1", "s1", "P001").
		Values("u1", "s1", "P002").
		Suffix("ON CONFLICT DO NOTHING").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO roster_draft (user_id, season_id, player_id) VALUES ($1, $2, $3), ($4, $5, $6) ON CONFLICT DO NOTHING"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 6 || args[5] != "P002" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertInto("roster_draft").Columns("a", "b").Values(1).ToSQL(); err == nil {
		t.Fatalf("expected error for short row")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		PlayerID string `db:"player_id,omitempty"`
		Skipped  string `db:"-"`
		Ignored  string
		hidden   string `db:"hidden"`
	}

	query, args, err := InsertModel("draft_actions", &row{ID: "a1", PlayerID: "P001", hidden: "x"}, "")
	if err != nil {
		t.Fatalf("build insert model query: %v", err)
	}
	if query != "INSERT INTO draft_actions (id, player_id) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[0] != "a1" || args[1] != "P001" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := InsertModel("draft_actions", "not a struct", ""); err == nil {
		t.Fatalf("expected error for non-struct model")
	}
}

func TestUpdateBuilder_OptimisticVersion(t *testing.T) {
	query, args, err := Update("user_season_states").
		Set("budget_current", int64(10)).
		SetExpr("version", "version + 1").
		SetExpr("updated_at", "NOW()").
		Where(Eq("user_id", "u1"), Eq("version", int64(3))).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE user_season_states SET budget_current = $1, version = version + 1, updated_at = NOW() WHERE user_id = $2 AND version = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 3 || args[1] != "u1" || args[2] != int64(3) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("draft_actions").
		Where(Eq("user_id", "u1"), Eq("season_id", "s1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM draft_actions WHERE user_id = $1 AND season_id = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 || args[1] != "s1" {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("draft_actions").ToSQL(); err == nil {
		t.Fatalf("expected error for unconditional delete")
	}
}
