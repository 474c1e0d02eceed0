package repository

import (
	"context"

	"github.com/playhub/community-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id uint64) (*models.User, error) {
	var user models.User
	if err := r.withGameLists(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.withGameLists(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddToWishlist inserts the (user, game) pair, leaving an existing pair untouched
func (r *GormUserRepository) AddToWishlist(ctx context.Context, userID, gameID uint64) error {
	entry := models.WishlistEntry{
		UserID: userID,
		GameID: gameID,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error
}

// AppendCurrentlyPlaying appends a new entry at the end of the sequence
func (r *GormUserRepository) AppendCurrentlyPlaying(ctx context.Context, userID, gameID uint64) error {
	entry := models.PlayingEntry{
		UserID: userID,
		GameID: gameID,
	}
	return r.db.WithContext(ctx).Create(&entry).Error
}

func (r *GormUserRepository) withGameLists(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Wishlist", func(db *gorm.DB) *gorm.DB {
			return db.Order("wishlist_entries.created_at ASC, wishlist_entries.game_id ASC")
		}).
		Preload("CurrentlyPlaying", func(db *gorm.DB) *gorm.DB {
			return db.Order("playing_entries.id ASC")
		})
}
