package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("public_id", "name").
		From("players").
		Where(Eq("document", "40000001"), Expr("join_date >= ?", "2026-01-01")).
		OrderBy("join_date DESC", "public_id").
		Limit(10).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id, name FROM players WHERE document = $1 AND join_date >= $2 ORDER BY join_date DESC, public_id LIMIT 10", query)
	assert.Equal(t, []any{"40000001", "2026-01-01"}, args)

	_, _, err = Select().From("players").ToSQL()
	assert.Error(t, err)
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("public_id").
		From("teams").
		Where(In("public_id", nil), Eq("main_category", "Mixto")).
		ToSQL()
	require.NoError(t, err)

	if query != "SELECT public_id FROM teams WHERE 1=0 AND main_category = $1" {
		t.Fatalf("unexpected query: %s", query)
	}
	assert.Len(t, args, 1)
}

func TestInsertBuilder_UpsertReturning(t *testing.T) {
	query, args, err := InsertInto("attendances").
		Columns("player_public_id", "attended_on", "status").
		Values("p1", "2026-10-15", "Presente").
		OnConflict(OnConflict("player_public_id", "attended_on").
			UpdateExcluded("status").
			UpdateExpr("updated_at", "NOW()")).
		Returning("player_public_id", "status").
		ToSQL()
	require.NoError(t, err)

	want := "INSERT INTO attendances (player_public_id, attended_on, status) VALUES ($1, $2, $3)" +
		" ON CONFLICT (player_public_id, attended_on) DO UPDATE SET status = EXCLUDED.status, updated_at = NOW()" +
		" RETURNING player_public_id, status"
	assert.Equal(t, want, query)
	assert.Equal(t, []any{"p1", "2026-10-15", "Presente"}, args)
}

func TestInsertBuilder_MultiRowAndDoNothing(t *testing.T) {
	query, args, err := InsertInto("team_members").
		Columns("team_public_id", "player_public_id").
		Values("t1", "p1").
		Values("t1", "p2").
		OnConflict(OnConflict("team_public_id", "player_public_id")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO team_members (team_public_id, player_public_id) VALUES ($1, $2), ($3, $4) ON CONFLICT (team_public_id, player_public_id) DO NOTHING", query)
	assert.Len(t, args, 4)

	_, _, err = InsertInto("team_members").Columns("a", "b").Values("only-one").ToSQL()
	assert.Error(t, err)
	_, _, err = InsertInto("team_members").Columns("a").ToSQL()
	assert.Error(t, err)
}

func TestInsertModel(t *testing.T) {
	type row struct {
		PublicID string `db:"public_id"`
		Name     string `db:"name,omitempty"`
		Skipped  string `db:"-"`
		internal string
	}

	insert, err := InsertModel("coaches", row{PublicID: "c1", Name: "Laura", internal: "x"})
	require.NoError(t, err)
	query, args, err := insert.ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO coaches (public_id, name) VALUES ($1, $2)", query)
	assert.Equal(t, []any{"c1", "Laura"}, args)

	cols, err := ModelColumns(&row{})
	require.NoError(t, err)
	assert.Equal(t, []string{"public_id", "name"}, cols)

	_, err = InsertModel("coaches", (*row)(nil))
	assert.Error(t, err)
	_, err = ModelColumns(42)
	assert.Error(t, err)
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("teams").
		Set("name", "Halcones").
		SetExpr("updated_at", "NOW()").
		Where(Eq("public_id", "t1")).
		Returning("main_category").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE teams SET name = $1, updated_at = NOW() WHERE public_id = $2 RETURNING main_category", query)
	assert.Equal(t, []any{"Halcones", "t1"}, args)
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("team_members").
		Where(Eq("team_public_id", "t1")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM team_members WHERE team_public_id = $1", query)
	assert.Equal(t, []any{"t1"}, args)

	if _, _, err := DeleteFrom("players").ToSQL(); err == nil {
		t.Fatalf("expected error for unbounded delete")
	}
}
