package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid or expired")
)

const (
	MsgInvalidCredentials = "No active account found with the given credentials"
	MsgInvalidToken       = "Token is invalid or expired"
)
