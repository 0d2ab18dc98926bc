package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_PreservesJSONForm(t *testing.T) {
	var r Registration
	require.NoError(t, json.Unmarshal([]byte(`{"tournament_id":42,"team_id":"t1"}`), &r))

	assert.Equal(t, "42", r.TournamentID.String())
	assert.Equal(t, "t1", r.TeamID.String())

	out, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tournament_id":42,"team_id":"t1"}`, string(out))
}

func TestID_IsZero(t *testing.T) {
	var id ID
	assert.True(t, id.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`0`), &id))
	assert.True(t, id.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &id))
	assert.True(t, id.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`"0"`), &id))
	assert.False(t, id.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}

func TestAddInvite(t *testing.T) {
	first := AddInvite(nil, NormalizeEmail(" A@x.com "))
	assert.Equal(t, []string{"a@x.com"}, first)

	second := AddInvite(first, NormalizeEmail("a@x.com"))
	assert.Equal(t, []string{"a@x.com"}, second)

	legacy := []string{"B@Y.com"}
	assert.Equal(t, []string{"B@Y.com"}, AddInvite(legacy, "b@y.com"))

	third := AddInvite(second, "c@x.com")
	assert.Equal(t, []string{"a@x.com", "c@x.com"}, third)
	assert.Len(t, second, 1, "input must not be modified")
}

func TestTeam_NormalizeSerializesEmptyArrays(t *testing.T) {
	team := Team{ID: NewID("t1"), Name: "Foo", Captain: "Bar"}
	team.Normalize()

	out, err := json.Marshal(team)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"members":[]`)
	assert.Contains(t, string(out), `"invites":[]`)
}

func TestTournamentPatch_Assignments(t *testing.T) {
	assert.True(t, TournamentPatch{}.IsEmpty())

	name := "Cup"
	max := 16
	p := TournamentPatch{Name: &name, MaxTeams: &max, SetStartDate: true}
	got := p.Assignments()

	require.Len(t, got, 3)
	assert.Equal(t, Assignment{Column: "name", Value: "Cup"}, got[0])
	assert.Equal(t, Assignment{Column: "max_teams", Value: 16}, got[1])
	assert.Equal(t, "start_date", got[2].Column)
	assert.Nil(t, got[2].Value)
}

func TestTimestamp_JSON(t *testing.T) {
	zero, err := json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(zero))

	ts := NewTimestamp(time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC))
	out, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2026-10-19T12:00:00Z"`, string(out))

	for _, in := range []string{
		`"2026-10-19T12:00:00+00:00"`,
		`"2026-10-19T12:00:00"`,
		`"2026-10-19 12:00:00+00:00"`,
	} {
		var got Timestamp
		require.NoError(t, json.Unmarshal([]byte(in), &got), in)
		assert.True(t, got.Equal(ts.Time), in)
	}

	var bad Timestamp
	assert.Error(t, json.Unmarshal([]byte(`"yesterday"`), &bad))
}
