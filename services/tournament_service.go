package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reggysosa/tournament-gateway/models"
	"github.com/reggysosa/tournament-gateway/repositories"
)

type CreateTournamentInput struct {
	Name      string
	MaxTeams  float64
	StartDate *string
}

// ParseCreateTournamentInput читает тело POST /tournaments так же нестрого, как PATCH:
// name может быть любым скаляром, maxTeams - числом или строкой с числом.
// Неподходящие значения оставляют поле пустым, и CreateTournament вернёт ошибку валидации.
func ParseCreateTournamentInput(body map[string]json.RawMessage) CreateTournamentInput {
	var input CreateTournamentInput
	input.Name, _ = scalarText(body["name"])
	if n, ok := looseNumber(body["maxTeams"]); ok {
		input.MaxTeams = n
	}
	if raw, ok := body["startDate"]; ok {
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			input.StartDate = &s
		}
	}
	return input
}

type TournamentService interface {
	ListTournaments(ctx context.Context) ([]models.Tournament, error)
	CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error)
	GetTournament(ctx context.Context, id models.ID) (*models.Tournament, error)
	UpdateTournament(ctx context.Context, id models.ID, patch models.TournamentPatch) error
	DeleteTournament(ctx context.Context, id models.ID) error
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	events         EventPublisher
	now            func() time.Time
}

func NewTournamentService(tournamentRepo repositories.TournamentRepository, events EventPublisher, now func() time.Time) TournamentService {
	if now == nil {
		now = time.Now
	}
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		events:         publisherOrNop(events),
		now:            now,
	}
}

func (s *tournamentService) ListTournaments(ctx context.Context) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tournaments: %w", err)
	}
	return tournaments, nil
}

func (s *tournamentService) CreateTournament(ctx context.Context, input CreateTournamentInput) (*models.Tournament, error) {
	if input.Name == "" {
		return nil, ErrTournamentNameRequired
	}
	maxTeams, ok := wholeNumber(input.MaxTeams)
	if !ok || maxTeams == 0 {
		return nil, ErrTournamentCapacityRequired
	}

	var startDate *string
	if input.StartDate != nil && *input.StartDate != "" {
		startDate = input.StartDate
	}

	tournament := &models.Tournament{
		Name:      input.Name,
		MaxTeams:  maxTeams,
		StartDate: startDate,
		Status:    models.StatusOpen,
		CreatedAt: models.NewTimestamp(s.now()),
	}

	created, err := s.tournamentRepo.Create(ctx, tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	publishTournamentEvent(s.events, created.ID, EventTournamentCreated, created)
	return created, nil
}

func (s *tournamentService) GetTournament(ctx context.Context, id models.ID) (*models.Tournament, error) {
	if id.IsZero() {
		return nil, ErrTournamentIDRequired
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to get tournament %s: %w", id, err)
	}
	return tournament, nil
}

// UpdateTournament применяет только распознанные поля; пустой патч - ошибка валидации,
// до хранилища он не доходит.
func (s *tournamentService) UpdateTournament(ctx context.Context, id models.ID, patch models.TournamentPatch) error {
	if id.IsZero() {
		return ErrTournamentIDRequired
	}
	if patch.IsEmpty() {
		return ErrNoUpdatableFields
	}
	if err := s.tournamentRepo.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("failed to update tournament %s: %w", id, err)
	}

	changed := make(map[string]any)
	for _, a := range patch.Assignments() {
		changed[a.Column] = a.Value
	}
	publishTournamentEvent(s.events, id, EventTournamentUpdated, map[string]any{"id": id, "changes": changed})
	return nil
}

func (s *tournamentService) DeleteTournament(ctx context.Context, id models.ID) error {
	if id.IsZero() {
		return ErrTournamentIDRequired
	}
	if err := s.tournamentRepo.DeleteCascade(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPartialFailure) {
			return fmt.Errorf("%w: %v", ErrPartialFailure, err)
		}
		return fmt.Errorf("failed to delete tournament %s: %w", id, err)
	}

	publishTournamentEvent(s.events, id, EventTournamentDeleted, map[string]any{"id": id})
	return nil
}

// ParseTournamentPatch отбирает из тела PATCH только распознанные ключи.
// Ключи с неподходящим типом или "ложным" значением игнорируются, как и неизвестные.
func ParseTournamentPatch(body map[string]json.RawMessage) models.TournamentPatch {
	var patch models.TournamentPatch

	if name, ok := nonEmptyString(body["name"]); ok {
		trimmed := strings.TrimSpace(name)
		patch.Name = &trimmed
	}

	if raw, ok := body["maxTeams"]; ok {
		var n float64
		if isJSONNumber(raw) && json.Unmarshal(raw, &n) == nil {
			if v, whole := wholeNumber(n); whole {
				patch.MaxTeams = &v
			}
		}
	}

	if raw, ok := body["startDate"]; ok {
		patch.SetStartDate = true
		var s string
		if json.Unmarshal(raw, &s) == nil && s != "" {
			patch.StartDate = &s
		}
	}

	if status, ok := nonEmptyString(body["status"]); ok {
		patch.Status = &status
	}
	if winner, ok := nonEmptyString(body["winner"]); ok {
		patch.Winner = &winner
	}
	if raw, ok := body["bracket"]; ok && isTruthyJSON(raw) {
		patch.Bracket = append(json.RawMessage(nil), raw...)
	}

	return patch
}
