package response

import "cridaa-booking/internal/usecase"

type AuthResponse struct {
	Token string            `json:"token"`
	User  *usecase.UserView `json:"user"`
}

type UserResponse struct {
	User *usecase.UserView `json:"user"`
}
