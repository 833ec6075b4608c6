package post

import "errors"

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrOwnerNotFound = errors.New("post owner does not exist")
)

const MsgPostNotFound = "Not found."
