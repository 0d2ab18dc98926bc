package models

import "encoding/json"

// TournamentStatus - статус турнира. Шлюз сам выставляет только "open" при создании,
// остальные значения приходят от клиента через PATCH.
type TournamentStatus string

const StatusOpen TournamentStatus = "open"

// Tournament представляет турнир.
type Tournament struct {
	ID        ID               `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	MaxTeams  int              `json:"max_teams" db:"max_teams"`
	StartDate *string          `json:"start_date" db:"start_date"`
	Status    TournamentStatus `json:"status" db:"status"`
	Winner    *string          `json:"winner" db:"winner"`
	Bracket   json.RawMessage  `json:"bracket" db:"bracket"`
	CreatedAt Timestamp        `json:"created_at" db:"created_at"`
}

// Registration - запись о регистрации команды на турнир.
// Своего идентификатора нет, строка определяется парой (tournament_id, team_id).
type Registration struct {
	TournamentID ID `json:"tournament_id" db:"tournament_id"`
	TeamID       ID `json:"team_id" db:"team_id"`
}

// Assignment is one column update of a partial tournament update.
type Assignment struct {
	Column string
	Value  any
}

// TournamentPatch holds only the fields present in a partial update.
// StartDate is applied when SetStartDate is true; a nil StartDate clears it.
type TournamentPatch struct {
	Name         *string
	MaxTeams     *int
	SetStartDate bool
	StartDate    *string
	Status       *string
	Winner       *string
	Bracket      json.RawMessage
}

func (p TournamentPatch) IsEmpty() bool {
	return len(p.Assignments()) == 0
}

// Assignments lists the column updates in a stable order.
func (p TournamentPatch) Assignments() []Assignment {
	var out []Assignment
	if p.Name != nil {
		out = append(out, Assignment{Column: "name", Value: *p.Name})
	}
	if p.MaxTeams != nil {
		out = append(out, Assignment{Column: "max_teams", Value: *p.MaxTeams})
	}
	if p.SetStartDate {
		var v any
		if p.StartDate != nil {
			v = *p.StartDate
		}
		out = append(out, Assignment{Column: "start_date", Value: v})
	}
	if p.Status != nil {
		out = append(out, Assignment{Column: "status", Value: *p.Status})
	}
	if p.Winner != nil {
		out = append(out, Assignment{Column: "winner", Value: *p.Winner})
	}
	if len(p.Bracket) > 0 {
		out = append(out, Assignment{Column: "bracket", Value: p.Bracket})
	}
	return out
}
