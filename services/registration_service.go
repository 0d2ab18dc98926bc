package services

import (
	"context"
	"fmt"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
)

type RegistrationService interface {
	RegisterTeam(ctx context.Context, tournamentID, teamID models.ID) error
	// UnregisterTeam не различает удаление существующей и отсутствующей пары.
	UnregisterTeam(ctx context.Context, tournamentID, teamID models.ID) error
}

type registrationService struct {
	registrationRepo repositories.RegistrationRepository
	events           EventPublisher
}

func NewRegistrationService(registrationRepo repositories.RegistrationRepository, events EventPublisher) RegistrationService {
	return &registrationService{
		registrationRepo: registrationRepo,
		events:           publisherOrNop(events),
	}
}

func validateRegistration(tournamentID, teamID models.ID) error {
	if tournamentID.IsZero() {
		return ErrTournamentIDRequired
	}
	if teamID.IsZero() {
		return ErrTeamIDRequired
	}
	return nil
}

func (s *registrationService) RegisterTeam(ctx context.Context, tournamentID, teamID models.ID) error {
	if err := validateRegistration(tournamentID, teamID); err != nil {
		return err
	}
	reg := models.Registration{TournamentID: tournamentID, TeamID: teamID}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return fmt.Errorf("failed to register team %s for tournament %s: %w", teamID, tournamentID, err)
	}
	publishTournamentEvent(s.events, tournamentID, EventRegistrationCreated, reg)
	return nil
}

func (s *registrationService) UnregisterTeam(ctx context.Context, tournamentID, teamID models.ID) error {
	if err := validateRegistration(tournamentID, teamID); err != nil {
		return err
	}
	reg := models.Registration{TournamentID: tournamentID, TeamID: teamID}
	if err := s.registrationRepo.Delete(ctx, reg); err != nil {
		return fmt.Errorf("failed to unregister team %s from tournament %s: %w", teamID, tournamentID, err)
	}
	publishTournamentEvent(s.events, tournamentID, EventRegistrationRemoved, reg)
	return nil
}
