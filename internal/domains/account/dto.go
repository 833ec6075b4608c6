package account

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const (
	MaxUsernameLength = 150
	MaxEmailLength    = 254
	MaxURLLength      = 200
	MinPasswordLength = 8
	MaxPasswordLength = 128
)

var (
	usernamePattern  = regexp.MustCompile(`^[\w.@+-]+$`)
	urlSchemePattern = regexp.MustCompile(`^(?i)(https?|ftps?)://`)
)

const usernameRuleMessage = "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."

func usernameRules(required bool) []validation.Rule {
	return []validation.Rule{
		validation.When(required, validation.Required.Error("This field is required.")),
		validation.Length(1, MaxUsernameLength),
		validation.Match(usernamePattern).Error(usernameRuleMessage),
	}
}

var (
	emailRules = []validation.Rule{
		validation.Length(0, MaxEmailLength),
		is.EmailFormat.Error("Enter a valid email address."),
	}
	urlRules = []validation.Rule{
		validation.Length(0, MaxURLLength),
		is.URL.Error("Enter a valid URL."),
		validation.Match(urlSchemePattern).Error("Enter a valid URL."),
	}
	passwordRules = []validation.Rule{
		validation.Length(MinPasswordLength, MaxPasswordLength),
	}
)

// CreateAccountRequest - POST /accounts và /auth/register
type CreateAccountRequest struct {
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Bio            string  `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Password       *string `json:"password,omitempty"` // write-only
}

func (r CreateAccountRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, usernameRules(true)...),
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.ProfilePicture, urlRules...),
		validation.Field(&r.Password, passwordRules...),
	)
}

// RegisterRequest giống CreateAccountRequest nhưng bắt buộc có password
type RegisterRequest struct {
	CreateAccountRequest
}

func (r RegisterRequest) Validate() error {
	err := r.CreateAccountRequest.Validate()
	if r.Password != nil && *r.Password != "" {
		return err
	}

	errs, ok := err.(validation.Errors)
	if !ok {
		if err != nil {
			return err
		}
		errs = validation.Errors{}
	}
	errs["password"] = validation.NewError("validation_required", "This field is required.")
	return errs
}

// UpdateAccountRequest - PUT/PATCH /accounts/:id
// Field nil giữ nguyên giá trị cũ. PUT bắt buộc có username.
type UpdateAccountRequest struct {
	Username       *string `json:"username"`
	Email          *string `json:"email"`
	Bio            *string `json:"bio"`
	ProfilePicture *string `json:"profile_picture"`
	Password       *string `json:"password,omitempty"`
}

func (r UpdateAccountRequest) Validate(partial bool) error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, append(usernameRules(!partial), validation.NilOrNotEmpty.Error("This field may not be blank."))...),
		validation.Field(&r.Email, emailRules...),
		validation.Field(&r.ProfilePicture, urlRules...),
		validation.Field(&r.Password, passwordRules...),
	)
}

// AccountResponse không bao giờ chứa credential
type AccountResponse struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`
}
