//go:build unit || e2e

package builder

import (
	"time"

	"cridaa-booking/internal/domain/user"
)

type UserBuilder struct {
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        string
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		Username:     "testuser",
		Email:        "test@example.com",
		PasswordHash: "hashed_password",
		FirstName:    "Test",
		LastName:     "User",
		Phone:        "555-0100",
	}
}

func (b *UserBuilder) BuildDomain() (*user.User, error) {
	return user.New(b.Username, b.Email, b.PasswordHash, b.FirstName, b.LastName, b.Phone, time.Now())
}

// Fluent builder methods
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}
