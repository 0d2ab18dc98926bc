package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
)

// Попытки условной записи invites, если список меняется параллельно.
const maxInviteAttempts = 3

type InviteService interface {
	// InviteByEmail добавляет нормализованный email в invites команды, если его там ещё нет.
	InviteByEmail(ctx context.Context, teamID models.ID, email string) (*models.Team, error)
}

type inviteService struct {
	teamRepo repositories.TeamRepository
	events   EventPublisher
}

func NewInviteService(teamRepo repositories.TeamRepository, events EventPublisher) InviteService {
	return &inviteService{
		teamRepo: teamRepo,
		events:   publisherOrNop(events),
	}
}

func (s *inviteService) InviteByEmail(ctx context.Context, teamID models.ID, email string) (*models.Team, error) {
	if teamID.IsZero() {
		return nil, ErrTeamIDRequired
	}
	email = models.NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	for attempt := 0; attempt < maxInviteAttempts; attempt++ {
		current, err := s.teamRepo.GetInvites(ctx, teamID)
		if err != nil {
			return nil, fmt.Errorf("failed to read invites of team %s: %w", teamID, err)
		}

		team, err := s.teamRepo.ReplaceInvites(ctx, teamID, current, models.AddInvite(current, email))
		if errors.Is(err, repositories.ErrConcurrentUpdate) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update invites of team %s: %w", teamID, err)
		}

		s.events.Publish(RoomTeams, EventTeamInvited, team)
		return team, nil
	}

	return nil, fmt.Errorf("%w: team %s after %d attempts", ErrInviteConflict, teamID, maxInviteAttempts)
}
