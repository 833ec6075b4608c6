package follow

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// CreateFollowRequest - POST /follows
// Follower luôn là caller, mọi field follower client gửi lên đều bị bỏ qua.
type CreateFollowRequest struct {
	User string `json:"user"`
}

func (r CreateFollowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.User,
			validation.Required.Error("This field is required."),
			validation.By(parsableUUID),
		),
	)
}

// parsableUUID dùng cùng parser với path/query params (uuid.Parse, không phân biệt hoa thường)
func parsableUUID(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_is_uuid", "Must be a valid UUID.")
	}
	return nil
}

// TargetID chỉ gọi sau khi Validate thành công
func (r CreateFollowRequest) TargetID() uuid.UUID {
	return uuid.MustParse(r.User)
}

// ListFilter - GET /follows?user=&follower=
type ListFilter struct {
	UserID     *uuid.UUID
	FollowerID *uuid.UUID
}

type FollowResponse struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Follower  uuid.UUID `json:"follower"`
	CreatedAt time.Time `json:"created_at"`
}
