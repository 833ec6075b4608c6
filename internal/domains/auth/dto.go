// Package auth issues and refreshes bearer tokens for accounts with a usable password.
package auth

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ObtainRequest - POST /token
type ObtainRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r ObtainRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("This field may not be blank.")),
		validation.Field(&r.Password, validation.Required.Error("This field may not be blank.")),
	)
}

// RefreshRequest - POST /token/refresh
type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func (r RefreshRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Refresh, validation.Required.Error("This field may not be blank.")),
	)
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type AccessToken struct {
	Access string `json:"access"`
}
