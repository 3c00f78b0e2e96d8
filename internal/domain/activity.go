package domain

import "time"

type Activity struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	HostID      uint      `json:"host_id"`

	// NumParticipants counts accepted joiners only; the host is tracked as a
	// Participation row with Host=true and is never part of the counter.
	NumParticipants int `json:"num_participants"`

	IsParticipant bool `json:"is_participant"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participation is a confirmed membership of a user in an activity.
type Participation struct {
	UserID     uint      `json:"user_id"`
	ActivityID uint      `json:"activity_id"`
	Host       bool      `json:"host"`
	CreatedAt  time.Time `json:"created_at"`
}
