package models

import "time"

// WishlistEntry is one member of a user's wishlist. The composite primary
// key gives the wishlist set semantics.
type WishlistEntry struct {
	UserID    uint64    `gorm:"primarykey" json:"user_id"`
	GameID    uint64    `gorm:"primarykey" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PlayingEntry is one position in a user's currently-playing sequence.
// Entries are ordered by ID and the same game may appear more than once.
type PlayingEntry struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	GameID    uint64    `gorm:"not null;index" json:"game_id"`
	CreatedAt time.Time `json:"created_at"`
}
