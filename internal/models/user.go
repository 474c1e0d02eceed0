package models

import (
	"time"
)

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"type:varchar(50);not null" json:"username"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Wishlist         []WishlistEntry `gorm:"foreignKey:UserID" json:"-"`
	CurrentlyPlaying []PlayingEntry  `gorm:"foreignKey:UserID" json:"-"`
}

// WishlistGameIDs returns the referenced game IDs in stored order
func (u User) WishlistGameIDs() []uint64 {
	ids := make([]uint64, 0, len(u.Wishlist))
	for _, entry := range u.Wishlist {
		ids = append(ids, entry.GameID)
	}
	return ids
}

// CurrentlyPlayingGameIDs returns the referenced game IDs in insertion order, duplicates included
func (u User) CurrentlyPlayingGameIDs() []uint64 {
	ids := make([]uint64, 0, len(u.CurrentlyPlaying))
	for _, entry := range u.CurrentlyPlaying {
		ids = append(ids, entry.GameID)
	}
	return ids
}
