package account

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Account là domain entity - ánh xạ 1:1 với bảng accounts
type Account struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Bio            string    `json:"bio"`
	ProfilePicture *string   `json:"profile_picture"`

	// PasswordHash rỗng nghĩa là account không thể obtain token
	PasswordHash string `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (a *Account) HasUsablePassword() bool {
	return a.PasswordHash != ""
}

// CheckPassword so sánh password với bcrypt hash, luôn false nếu không có password
func (a *Account) CheckPassword(plain string) bool {
	if !a.HasUsablePassword() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(plain)) == nil
}

// SetPassword hash password bằng bcrypt với cost cho trước
func (a *Account) SetPassword(plain string, cost int) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hash)
	return nil
}

func (a *Account) ToResponse() AccountResponse {
	return AccountResponse{
		ID:             a.ID,
		Username:       a.Username,
		Email:          a.Email,
		Bio:            a.Bio,
		ProfilePicture: a.ProfilePicture,
	}
}
