package post

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const MaxMediaLength = 200

var mediaSchemePattern = regexp.MustCompile(`^(?i)(https?|ftps?)://`)

var mediaRules = []validation.Rule{
	validation.Length(0, MaxMediaLength),
	is.URL.Error("Enter a valid URL."),
	validation.Match(mediaSchemePattern).Error("Enter a valid URL."),
}

// CreatePostRequest - POST /posts
// Không có field user/timestamp: owner và thời gian do server gán.
type CreatePostRequest struct {
	Content string  `json:"content"`
	Media   *string `json:"media"`
}

func (r *CreatePostRequest) Normalize() {
	r.Content = strings.TrimSpace(r.Content)
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required.Error("This field may not be blank.")),
		validation.Field(&r.Media, mediaRules...),
	)
}

// UpdatePostRequest - PUT/PATCH /posts/:id
// PUT bắt buộc content, PATCH thì mọi field đều optional.
type UpdatePostRequest struct {
	Content *string `json:"content"`
	Media   *string `json:"media"`
}

func (r *UpdatePostRequest) Normalize() {
	if r.Content != nil {
		trimmed := strings.TrimSpace(*r.Content)
		r.Content = &trimmed
	}
}

func (r UpdatePostRequest) Validate(partial bool) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content,
			validation.When(!partial, validation.Required.Error("This field is required.")),
			validation.NilOrNotEmpty.Error("This field may not be blank."),
		),
		validation.Field(&r.Media, mediaRules...),
	)
}

// Apply ghi các field không nil vào p. Media rỗng xóa media.
func (r UpdatePostRequest) Apply(p *Post) {
	if r.Content != nil {
		p.Content = *r.Content
	}
	if r.Media != nil {
		if *r.Media == "" {
			p.Media = nil
		} else {
			media := *r.Media
			p.Media = &media
		}
	}
}

type PostResponse struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	User      uuid.UUID `json:"user"`
	Timestamp time.Time `json:"timestamp"`
	Media     *string   `json:"media"`
}
