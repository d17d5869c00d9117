package user

import (
	"strings"

	"github.com/commercelab/microshop/internal/core/domain/apperror"
)

type User struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CreateUserRequest represents the request to create a new user.
type CreateUserRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return apperror.Validation("user name is required")
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return apperror.Validation("a valid email address is required")
	}
	if strings.TrimSpace(r.Address) == "" {
		return apperror.Validation("user address is required")
	}
	return nil
}

// Seed returns the initial user fixtures.
func Seed() []User {
	return []User{
		{ID: 69, Name: "Mike Oochie", Email: "mike.oochie@expose.com", Address: "69, Bakers' Street, 1970"},
	}
}
