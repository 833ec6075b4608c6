package follow

import (
	"time"

	"github.com/google/uuid"
)

// Follow là directed edge: FollowerID follows UserID
type Follow struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user"`
	FollowerID uuid.UUID `json:"follower"`
	CreatedAt  time.Time `json:"created_at"`
}

func (f *Follow) ToResponse() FollowResponse {
	return FollowResponse{
		ID:        f.ID,
		User:      f.UserID,
		Follower:  f.FollowerID,
		CreatedAt: f.CreatedAt,
	}
}

func ToResponses(follows []Follow) []FollowResponse {
	out := make([]FollowResponse, len(follows))
	for i := range follows {
		out[i] = follows[i].ToResponse()
	}
	return out
}
