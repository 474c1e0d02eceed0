package dto

import (
	"github.com/playhub/community-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID               uint64   `json:"id"`
	Username         string   `json:"username"`
	Email            string   `json:"email"`
	Wishlist         []uint64 `json:"wishlist"`
	CurrentlyPlaying []uint64 `json:"currentlyPlaying"`
}

// AuthPayload is returned by addUser and login
type AuthPayload struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ToUserDTO converts a user model to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:               user.ID,
		Username:         user.Username,
		Email:            user.Email,
		Wishlist:         user.WishlistGameIDs(),
		CurrentlyPlaying: user.CurrentlyPlayingGameIDs(),
	}
}

// ToUserRef converts an optional user to a nullable DTO
func ToUserRef(user *models.User) *UserDTO {
	if user == nil {
		return nil
	}
	out := ToUserDTO(*user)
	return &out
}

// ToAuthPayload builds the token and user pair
func ToAuthPayload(token string, user models.User) AuthPayload {
	return AuthPayload{
		Token: token,
		User:  ToUserDTO(user),
	}
}
