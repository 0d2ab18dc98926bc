package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
)

type CreateTeamInput struct {
	ID      models.ID
	Name    string
	Captain string
	Members []string
	Invites []string
}

// ParseCreateTeamInput читает тело POST /teams. id, name и captain принимаются
// строкой или числом; members и invites - массивом скаляров или одним скаляром.
func ParseCreateTeamInput(body map[string]json.RawMessage) CreateTeamInput {
	var input CreateTeamInput
	if raw, ok := body["id"]; ok {
		var id models.ID
		if json.Unmarshal(raw, &id) == nil {
			input.ID = id
		}
	}
	input.Name, _ = scalarText(body["name"])
	input.Captain, _ = scalarText(body["captain"])
	input.Members = textList(body["members"])
	input.Invites = textList(body["invites"])
	return input
}

type TeamService interface {
	ListTeams(ctx context.Context) ([]models.Team, error)
	CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error)
}

type teamService struct {
	teamRepo repositories.TeamRepository
	events   EventPublisher
	now      func() time.Time
}

func NewTeamService(teamRepo repositories.TeamRepository, events EventPublisher, now func() time.Time) TeamService {
	if now == nil {
		now = time.Now
	}
	return &teamService{
		teamRepo: teamRepo,
		events:   publisherOrNop(events),
		now:      now,
	}
}

func (s *teamService) ListTeams(ctx context.Context) ([]models.Team, error) {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (s *teamService) CreateTeam(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	if input.ID.IsZero() {
		return nil, ErrTeamIDRequired
	}
	if input.Name == "" {
		return nil, ErrTeamNameRequired
	}
	if input.Captain == "" {
		return nil, ErrTeamCaptainRequired
	}

	team := &models.Team{
		ID:        input.ID,
		Name:      input.Name,
		Captain:   input.Captain,
		Members:   input.Members,
		Invites:   input.Invites,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	team.Normalize()

	created, err := s.teamRepo.Create(ctx, team)
	if err != nil {
		return nil, fmt.Errorf("failed to create team %s: %w", input.ID, err)
	}

	s.events.Publish(RoomTeams, EventTeamCreated, created)
	return created, nil
}
