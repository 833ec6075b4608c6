package follow

import "errors"

var (
	ErrCannotFollowSelf     = errors.New("cannot follow yourself")
	ErrAlreadyFollowing     = errors.New("follow relationship already exists")
	ErrTargetNotFound       = errors.New("target account does not exist")
	ErrFollowNotFound       = errors.New("follow not found")
	ErrRelationshipNotFound = errors.New("follow relationship does not exist")
)

// Messages trả về cho client
const (
	MsgCannotFollowSelf     = "You cannot follow yourself."
	MsgAlreadyFollowing     = "The fields user, follower must make a unique set."
	MsgTargetNotFound       = "Invalid pk - object does not exist."
	MsgFollowNotFound       = "Not found."
	MsgRelationshipNotFound = "Follow relationship does not exist."
)
