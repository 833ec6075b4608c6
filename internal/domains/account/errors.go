package account

import "errors"

// Repository-level errors
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrUsernameTaken   = errors.New("username already exists")
)

// Messages trả về cho client
const (
	MsgAccountNotFound = "Not found."
	MsgUsernameTaken   = "A user with that username already exists."
)
