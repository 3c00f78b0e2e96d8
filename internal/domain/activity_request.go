package domain

import "time"

type ActivityRequestState string

const (
	RequestStatePending  ActivityRequestState = "pending"
	RequestStateAccepted ActivityRequestState = "accepted"
	RequestStateRejected ActivityRequestState = "rejected"
)

func (s ActivityRequestState) IsDecision() bool {
	return s == RequestStateAccepted || s == RequestStateRejected
}

// ActivityRequest is a user's application to join an activity. It is created
// pending and moves to accepted or rejected exactly once; accepting it is what
// materializes a Participation row and bumps the activity's participant count.
type ActivityRequest struct {
	ID             string               `json:"id"`
	UserID         uint                 `json:"user_id"`
	ActivityID     uint                 `json:"activity_id"`
	State          ActivityRequestState `json:"state"`
	RejectedReason string               `json:"rejected_reason,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}
