package models

import "strings"

type Team struct {
	ID        ID        `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Captain   string    `json:"captain" db:"captain"`
	Members   []string  `json:"members" db:"members"`
	Invites   []string  `json:"invites" db:"invites"`
	CreatedAt Timestamp `json:"created_at" db:"created_at"`
}

// Normalize replaces nil collections with empty ones so they serialize as [].
func (t *Team) Normalize() {
	if t.Members == nil {
		t.Members = []string{}
	}
	if t.Invites == nil {
		t.Invites = []string{}
	}
}

// NormalizeEmail приводит email к виду, в котором он хранится в invites.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddInvite returns a copy of invites with email appended unless an entry
// already matches it case-insensitively. The input slice is never modified.
func AddInvite(invites []string, email string) []string {
	next := make([]string, 0, len(invites)+1)
	next = append(next, invites...)
	for _, existing := range invites {
		if strings.EqualFold(strings.TrimSpace(existing), email) {
			return next
		}
	}
	return append(next, email)
}
