package repository

import (
	"context"

	"github.com/playhub/community-api/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID with wishlist and currently-playing entries loaded
	FindByID(ctx context.Context, id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// AddToWishlist adds a game reference to the user's wishlist; repeated adds are no-ops
	AddToWishlist(ctx context.Context, userID, gameID uint64) error

	// AppendCurrentlyPlaying appends a game reference to the user's currently-playing sequence
	AppendCurrentlyPlaying(ctx context.Context, userID, gameID uint64) error
}

// GameRepository defines the interface for game catalogue access
type GameRepository interface {
	// FindByID finds a game by ID
	FindByID(ctx context.Context, id uint64) (*models.Game, error)

	// List lists all games ordered by title
	List(ctx context.Context) ([]models.Game, error)

	// ListPage lists one page of games ordered by title
	ListPage(ctx context.Context, offset, limit int) ([]models.Game, error)

	// FindOrCreate returns the game with the same title, creating it when absent
	FindOrCreate(ctx context.Context, game *models.Game) error
}

// PostRepository defines the interface for post data access
type PostRepository interface {
	// Create creates a new post
	Create(ctx context.Context, post *models.Post) error

	// FindByID finds a post by ID
	FindByID(ctx context.Context, id uint64) (*models.Post, error)

	// List lists all posts, newest first
	List(ctx context.Context) ([]models.Post, error)

	// UpdateContent replaces the content and refreshes updated_at in one statement
	UpdateContent(ctx context.Context, id uint64, content string) error

	// Delete removes a post and returns its last state
	Delete(ctx context.Context, id uint64) (*models.Post, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	// Create creates a new comment
	Create(ctx context.Context, comment *models.Comment) error

	// FindByID finds a comment by ID with its author preloaded
	FindByID(ctx context.Context, id uint64) (*models.Comment, error)

	// ListByPost lists the comments of a post, oldest first, with authors preloaded
	ListByPost(ctx context.Context, postID uint64) ([]models.Comment, error)

	// UpdateContent replaces the content and refreshes updated_at in one statement
	UpdateContent(ctx context.Context, id uint64, content string) error

	// Delete removes a comment; deleting a missing comment is not an error
	Delete(ctx context.Context, id uint64) error
}
