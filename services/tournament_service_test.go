package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
	"github.com/reggysosa/tournament-gateway/testutil"
)

func strPtr(s string) *string { return &s }

func TestTournamentService_CreateTournament(t *testing.T) {
	repo := new(testutil.MockTournamentRepository)
	events := new(testutil.RecordingPublisher)
	svc := NewTournamentService(repo, events, clock)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(tr *models.Tournament) bool {
		return tr.Name == "Cup" && tr.MaxTeams == 8 && tr.Status == models.StatusOpen && tr.StartDate == nil
	})).Return(&models.Tournament{ID: models.NewID("7"), Name: "Cup", MaxTeams: 8, Status: models.StatusOpen}, nil)

	created, err := svc.CreateTournament(context.Background(), CreateTournamentInput{Name: "Cup", MaxTeams: 8, StartDate: strPtr("")})
	require.NoError(t, err)
	assert.Equal(t, "7", created.ID.String())

	rooms := []string{}
	for _, e := range events.Events() {
		rooms = append(rooms, e.Room)
	}
	assert.ElementsMatch(t, []string{RoomTournaments, TournamentRoom(models.NewID("7"))}, rooms)
	repo.AssertExpectations(t)
}

func TestTournamentService_CreateTournament_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input CreateTournamentInput
		want  error
	}{
		{"missing name", CreateTournamentInput{MaxTeams: 8}, ErrTournamentNameRequired},
		{"zero capacity", CreateTournamentInput{Name: "Cup"}, ErrTournamentCapacityRequired},
		{"fractional capacity", CreateTournamentInput{Name: "Cup", MaxTeams: 2.5}, ErrTournamentCapacityRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(testutil.MockTournamentRepository)
			svc := NewTournamentService(repo, nil, clock)

			_, err := svc.CreateTournament(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.Calls)
		})
	}
}

func TestTournamentService_GetTournament(t *testing.T) {
	id := models.NewID("3")

	t.Run("found", func(t *testing.T) {
		repo := new(testutil.MockTournamentRepository)
		repo.On("GetByID", mock.Anything, id).Return(&models.Tournament{ID: id, Name: "Cup"}, nil)
		svc := NewTournamentService(repo, nil, clock)

		got, err := svc.GetTournament(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "Cup", got.Name)
	})

	t.Run("not found", func(t *testing.T) {
		repo := new(testutil.MockTournamentRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, repositories.ErrTournamentNotFound)
		svc := NewTournamentService(repo, nil, clock)

		_, err := svc.GetTournament(context.Background(), id)
		assert.ErrorIs(t, err, ErrTournamentNotFound)
	})

	t.Run("store error", func(t *testing.T) {
		repo := new(testutil.MockTournamentRepository)
		repo.On("GetByID", mock.Anything, id).Return(nil, errors.New("boom"))
		svc := NewTournamentService(repo, nil, clock)

		_, err := svc.GetTournament(context.Background(), id)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrTournamentNotFound))
	})
}

func TestTournamentService_UpdateTournament_EmptyPatchSkipsStore(t *testing.T) {
	repo := new(testutil.MockTournamentRepository)
	svc := NewTournamentService(repo, nil, clock)

	err := svc.UpdateTournament(context.Background(), models.NewID("3"), ParseTournamentPatch(map[string]json.RawMessage{
		"foo": json.RawMessage(`1`),
	}))
	assert.ErrorIs(t, err, ErrNoUpdatableFields)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Empty(t, repo.Calls)
}

func TestTournamentService_UpdateTournament(t *testing.T) {
	repo := new(testutil.MockTournamentRepository)
	events := new(testutil.RecordingPublisher)
	svc := NewTournamentService(repo, events, clock)
	id := models.NewID("3")
	patch := models.TournamentPatch{Status: strPtr("closed")}

	repo.On("Update", mock.Anything, id, patch).Return(nil)

	require.NoError(t, svc.UpdateTournament(context.Background(), id, patch))
	require.Len(t, events.Events(), 2)
	assert.Equal(t, EventTournamentUpdated, events.Events()[0].Type)
	repo.AssertExpectations(t)
}

func TestTournamentService_DeleteTournament(t *testing.T) {
	id := models.NewID("3")

	t.Run("ok", func(t *testing.T) {
		repo := new(testutil.MockTournamentRepository)
		repo.On("DeleteCascade", mock.Anything, id).Return(nil)
		svc := NewTournamentService(repo, nil, clock)

		assert.NoError(t, svc.DeleteTournament(context.Background(), id))
	})

	t.Run("partial failure", func(t *testing.T) {
		repo := new(testutil.MockTournamentRepository)
		repo.On("DeleteCascade", mock.Anything, id).
			Return(errors.Join(repositories.ErrPartialFailure, errors.New("registrations deleted, tournament kept")))
		events := new(testutil.RecordingPublisher)
		svc := NewTournamentService(repo, events, clock)

		err := svc.DeleteTournament(context.Background(), id)
		assert.ErrorIs(t, err, ErrPartialFailure)
		assert.Empty(t, events.Events())
	})
}

func TestParseTournamentPatch(t *testing.T) {
	tests := []struct {
		name string
		body string
		want models.TournamentPatch
	}{
		{"empty body", `{}`, models.TournamentPatch{}},
		{"unknown keys", `{"foo":1,"bar":"x"}`, models.TournamentPatch{}},
		{"name trimmed", `{"name":"  Cup  "}`, models.TournamentPatch{Name: strPtr("Cup")}},
		{"blank name ignored", `{"name":"   "}`, models.TournamentPatch{}},
		{"non-string name ignored", `{"name":5}`, models.TournamentPatch{}},
		{"start date cleared by empty string", `{"startDate":""}`, models.TournamentPatch{SetStartDate: true}},
		{"start date cleared by non-string", `{"startDate":12}`, models.TournamentPatch{SetStartDate: true}},
		{"start date set", `{"startDate":"2026-01-01"}`, models.TournamentPatch{SetStartDate: true, StartDate: strPtr("2026-01-01")}},
		{"falsy bracket ignored", `{"bracket":false}`, models.TournamentPatch{}},
		{"bracket kept", `{"bracket":{"rounds":[]}}`, models.TournamentPatch{Bracket: json.RawMessage(`{"rounds":[]}`)}},
		{"status and winner", `{"status":"done","winner":"t1"}`, models.TournamentPatch{Status: strPtr("done"), Winner: strPtr("t1")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &body))
			assert.Equal(t, tt.want, ParseTournamentPatch(body))
		})
	}
}

func TestParseTournamentPatch_MaxTeams(t *testing.T) {
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(`{"maxTeams":16}`), &body))
	patch := ParseTournamentPatch(body)
	require.NotNil(t, patch.MaxTeams)
	assert.Equal(t, 16, *patch.MaxTeams)

	require.NoError(t, json.Unmarshal([]byte(`{"maxTeams":"16"}`), &body))
	assert.True(t, ParseTournamentPatch(body).IsEmpty())

	require.NoError(t, json.Unmarshal([]byte(`{"maxTeams":1.5}`), &body))
	assert.True(t, ParseTournamentPatch(body).IsEmpty())
}

func TestParseCreateTournamentInput(t *testing.T) {
	tests := []struct {
		body      string
		wantName  string
		wantMax   float64
		wantStart *string
	}{
		{`{"name":"Cup","maxTeams":8,"startDate":"2026-11-01"}`, "Cup", 8, strPtr("2026-11-01")},
		{`{"name":"Cup","maxTeams":" 16 "}`, "Cup", 16, nil},
		{`{"name":12,"maxTeams":"abc"}`, "12", 0, nil},
		{`{"name":true,"maxTeams":null,"startDate":""}`, "true", 0, nil},
		{`{"name":{"x":1},"maxTeams":[8]}`, "", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			var body map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &body))

			input := ParseCreateTournamentInput(body)
			assert.Equal(t, tt.wantName, input.Name)
			assert.Equal(t, tt.wantMax, input.MaxTeams)
			assert.Equal(t, tt.wantStart, input.StartDate)
		})
	}
}

func TestRegistrationService(t *testing.T) {
	repo := new(testutil.MockRegistrationRepository)
	events := new(testutil.RecordingPublisher)
	svc := NewRegistrationService(repo, events)
	reg := models.Registration{TournamentID: models.NewID("3"), TeamID: models.NewID("t1")}

	repo.On("Create", mock.Anything, reg).Return(nil).Once()
	repo.On("Delete", mock.Anything, reg).Return(nil).Once()

	require.NoError(t, svc.RegisterTeam(context.Background(), reg.TournamentID, reg.TeamID))
	require.NoError(t, svc.UnregisterTeam(context.Background(), reg.TournamentID, reg.TeamID))
	assert.Len(t, events.Events(), 4)
	repo.AssertExpectations(t)

	err := svc.RegisterTeam(context.Background(), models.ID{}, reg.TeamID)
	assert.ErrorIs(t, err, ErrTournamentIDRequired)
	err = svc.UnregisterTeam(context.Background(), reg.TournamentID, models.ID{})
	assert.ErrorIs(t, err, ErrTeamIDRequired)
}

func TestRegistrationService_DuplicateSurfaces(t *testing.T) {
	repo := new(testutil.MockRegistrationRepository)
	svc := NewRegistrationService(repo, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(repositories.ErrDuplicate)

	err := svc.RegisterTeam(context.Background(), models.NewID("3"), models.NewID("t1"))
	assert.ErrorIs(t, err, repositories.ErrDuplicate)
}
