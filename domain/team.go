package domain

import (
	"slices"
	"time"
)

// Team groups users around a set of boards.
type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedBy string    `json:"created_by"`
	Members   []string  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *Team) HasMember(userID string) bool {
	return t != nil && slices.Contains(t.Members, userID)
}

// Board belongs to a team and owns tasks.
type Board struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	TeamID    string    `json:"team_id"`
	CreatedAt time.Time `json:"created_at"`
}
