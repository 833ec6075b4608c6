package post

import (
	"time"

	"github.com/google/uuid"
)

// Post là một content item của một Account.
// UserID và Timestamp được set một lần lúc tạo và không bao giờ đổi.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	UserID    uuid.UUID `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Media     *string   `json:"media"`
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:        p.ID,
		Content:   p.Content,
		User:      p.UserID,
		Timestamp: p.Timestamp,
		Media:     p.Media,
	}
}

func ToResponses(posts []Post) []PostResponse {
	out := make([]PostResponse, len(posts))
	for i := range posts {
		out[i] = posts[i].ToResponse()
	}
	return out
}
