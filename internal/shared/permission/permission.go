// Package permission holds the access rules shared by the resource services.
// Every check is a pure function of the caller and the resource owner.
package permission

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

var (
	ErrNotAuthenticated = errors.New("authentication credentials were not provided")
	ErrForbidden        = errors.New("permission denied")
)

const DeniedMessage = "You do not have permission to perform this action."

// IsSafeMethod: GET, HEAD, OPTIONS không thay đổi resource
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func IsAuthenticated(caller uuid.UUID) bool {
	return caller != uuid.Nil
}

func IsOwner(caller, owner uuid.UUID) bool {
	return IsAuthenticated(caller) && caller == owner
}

// OwnerOrReadOnly cho phép mọi caller đã xác thực dùng safe method, chỉ owner được ghi
func OwnerOrReadOnly(method string, caller, owner uuid.UUID) bool {
	if !IsAuthenticated(caller) {
		return false
	}
	return IsSafeMethod(method) || IsOwner(caller, owner)
}

// Check trả về ErrNotAuthenticated hoặc ErrForbidden khi OwnerOrReadOnly từ chối
func Check(method string, caller, owner uuid.UUID) error {
	if !IsAuthenticated(caller) {
		return ErrNotAuthenticated
	}
	if !OwnerOrReadOnly(method, caller, owner) {
		return ErrForbidden
	}
	return nil
}
