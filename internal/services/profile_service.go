package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playhub/community-api/internal/auth"
	"github.com/playhub/community-api/internal/constants"
	apierrors "github.com/playhub/community-api/internal/errors"
	"github.com/playhub/community-api/internal/models"
	"github.com/playhub/community-api/internal/repository"
	"github.com/playhub/community-api/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ProfileService handles registration, login and the caller's game lists.
type ProfileService struct {
	userRepo repository.UserRepository
	gameRepo repository.GameRepository
	identity auth.IdentityProvider
	log      logrus.FieldLogger
}

// NewProfileService creates a new ProfileService
func NewProfileService(userRepo repository.UserRepository, gameRepo repository.GameRepository, identity auth.IdentityProvider, log logrus.FieldLogger) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		gameRepo: gameRepo,
		identity: identity,
		log:      log,
	}
}

// AuthResult is returned by Register and Login
type AuthResult struct {
	Token string
	User  *models.User
}

// RegisterInput represents the information required to create a user
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Register creates a user and issues a token for it. A token failure after
// the user is stored leaves the user in place.
func (s *ProfileService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	details := map[string]string{}
	if username == "" {
		details["username"] = "username is required"
	}
	if email == "" {
		details["email"] = "email is required"
	}
	if len(input.Password) < constants.MinPasswordLength {
		details["password"] = fmt.Sprintf("password must be at least %d characters", constants.MinPasswordLength)
	}
	if len(details) > 0 {
		return nil, apierrors.Validation("Invalid registration details", details)
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apierrors.OperationFailed("Failed to create user", err)
	}

	hash, err := s.identity.HashPassword(input.Password)
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to create user", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, duplicateEmail()
		}
		return nil, apierrors.OperationFailed("Failed to create user", err)
	}

	token, err := s.identity.IssueToken(user)
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to issue token", err)
	}

	s.log.WithField("user_id", user.ID).Info("user registered")
	return &AuthResult{Token: token, User: user}, nil
}

func duplicateEmail() error {
	return apierrors.Validation("Email is already registered", map[string]string{
		"email": "already registered",
	})
}

// Login verifies credentials and issues a token
func (s *ProfileService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierrors.AuthenticationFailed("Invalid email or password")
		}
		return nil, apierrors.OperationFailed("Failed to log in", err)
	}

	if !s.identity.CheckPassword(user.PasswordHash, password) {
		return nil, apierrors.AuthenticationFailed("Invalid email or password")
	}

	token, err := s.identity.IssueToken(user)
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to issue token", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Me returns the caller's user with both game lists loaded
func (s *ProfileService) Me(ctx context.Context, caller *auth.Caller) (*models.User, error) {
	caller, err := auth.RequireCaller(caller, "You must be logged in!")
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to fetch user")
	}
	return user, nil
}

// GameListInput names the game to add to one of the caller's lists
type GameListInput struct {
	GameID uint64
}

// AddToWishlist adds a game to the caller's wishlist. Adding a game twice
// leaves a single entry. The game is not required to exist.
func (s *ProfileService) AddToWishlist(ctx context.Context, input GameListInput, caller *auth.Caller) (*models.User, error) {
	caller, err := auth.RequireCaller(caller, "You must be logged in to update your wishlist!")
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.AddToWishlist(ctx, caller.UserID, input.GameID); err != nil {
		return nil, apierrors.OperationFailed("Failed to update wishlist", err)
	}

	user, err := s.userRepo.FindByID(ctx, caller.UserID)
	if err != nil {
		return nil, storeError(err, "User not found", "Failed to update wishlist")
	}
	return user, nil
}

// AddToCurrentlyPlaying appends an existing game to the caller's
// currently-playing sequence and returns the game.
func (s *ProfileService) AddToCurrentlyPlaying(ctx context.Context, input GameListInput, caller *auth.Caller) (*models.Game, error) {
	caller, err := auth.RequireCaller(caller, "You must be logged in to update your games!")
	if err != nil {
		return nil, err
	}

	game, err := s.gameRepo.FindByID(ctx, input.GameID)
	if err != nil {
		return nil, storeError(err, "Game not found", "Failed to update currently playing")
	}

	if err := s.userRepo.AppendCurrentlyPlaying(ctx, caller.UserID, game.ID); err != nil {
		return nil, apierrors.OperationFailed("Failed to update currently playing", err)
	}
	return game, nil
}

// ListGames returns the game catalogue. A zero page and limit return every
// game; otherwise the values are clamped and one page is returned.
func (s *ProfileService) ListGames(ctx context.Context, page, limit int) ([]models.Game, error) {
	var (
		games []models.Game
		err   error
	)
	if page == 0 && limit == 0 {
		games, err = s.gameRepo.List(ctx)
	} else {
		p := utils.NewPaginationParams(page, limit)
		games, err = s.gameRepo.ListPage(ctx, p.Offset, p.Limit)
	}
	if err != nil {
		return nil, apierrors.OperationFailed("Failed to fetch games", err)
	}
	return games, nil
}
