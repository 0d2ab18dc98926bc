package services

import "github.com/reggysosa/tournament-gateway/models"

// Типы событий, которые получают подписчики websocket.
const (
	EventTeamCreated         = "team.created"
	EventTeamInvited         = "team.invited"
	EventTournamentCreated   = "tournament.created"
	EventTournamentUpdated   = "tournament.updated"
	EventTournamentDeleted   = "tournament.deleted"
	EventRegistrationCreated = "registration.created"
	EventRegistrationRemoved = "registration.deleted"
)

const (
	RoomTeams       = "teams"
	RoomTournaments = "tournaments"
)

// TournamentRoom - комната событий одного турнира.
func TournamentRoom(id models.ID) string {
	return "tournament_" + id.String()
}

// EventPublisher рассылает событие подписчикам комнаты. Не должен блокировать запрос.
type EventPublisher interface {
	Publish(room, eventType string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, any) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

func publishTournamentEvent(p EventPublisher, id models.ID, eventType string, payload any) {
	p.Publish(RoomTournaments, eventType, payload)
	p.Publish(TournamentRoom(id), eventType, payload)
}
